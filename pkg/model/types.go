package model

import internalmodel "github.com/goliatone/go-cardgen/internal/model"

// Unit re-exports the internal dimension unit enumeration.
type Unit = internalmodel.Unit

const (
	UnitMM = internalmodel.UnitMM
	UnitPX = internalmodel.UnitPX
)

// FieldType re-exports the internal field kind enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText    = internalmodel.FieldTypeText
	FieldTypeImage   = internalmodel.FieldTypeImage
	FieldTypeBarcode = internalmodel.FieldTypeBarcode
	FieldTypeDate    = internalmodel.FieldTypeDate
)

// ParseFieldType maps a wire string onto a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	return internalmodel.ParseFieldType(s)
}

// Align re-exports the internal text alignment enumeration.
type Align = internalmodel.Align

const (
	AlignLeft   = internalmodel.AlignLeft
	AlignCenter = internalmodel.AlignCenter
	AlignRight  = internalmodel.AlignRight
)

type ViewBox = internalmodel.ViewBox
type TemplateMeta = internalmodel.TemplateMeta
type FieldDefinition = internalmodel.FieldDefinition
type FieldMapping = internalmodel.FieldMapping
type UserData = internalmodel.UserData
type Value = internalmodel.Value
type TextValue = internalmodel.TextValue
type ImageValue = internalmodel.ImageValue
type CardData = internalmodel.CardData

// NewImageValue returns an ImageValue with the default scale applied.
func NewImageValue(src string) ImageValue {
	return internalmodel.NewImageValue(src)
}
