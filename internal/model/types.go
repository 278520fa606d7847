package model

// Unit enumerates the physical units a template declares its dimensions in.
type Unit string

const (
	UnitMM Unit = "mm"
	UnitPX Unit = "px"
)

// FieldType is the closed enumeration of bindable field kinds. Wire strings
// are resolved through ParseFieldType so unknown values hit a single
// well-defined branch instead of falling through a string switch.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeImage   FieldType = "image"
	FieldTypeBarcode FieldType = "barcode"
	FieldTypeDate    FieldType = "date"
)

// ParseFieldType maps a wire string onto a FieldType. Unrecognized kinds
// report ok=false; callers decide whether that means "default to text" or an
// error.
func ParseFieldType(s string) (FieldType, bool) {
	switch FieldType(s) {
	case FieldTypeText, FieldTypeImage, FieldTypeBarcode, FieldTypeDate:
		return FieldType(s), true
	default:
		return FieldTypeText, false
	}
}

// Align enumerates horizontal text alignment for a field.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ViewBox mirrors the SVG viewBox attribute.
type ViewBox struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TemplateMeta describes an extracted template. It is immutable once produced:
// RawSVG holds the normalized, id-patched serialization every downstream
// consumer operates on, never the original upload bytes.
type TemplateMeta struct {
	Name    string   `json:"name"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Unit    Unit     `json:"unit"`
	RawSVG  string   `json:"rawSvg"`
	ViewBox *ViewBox `json:"viewBox,omitempty"`
	Fonts   []string `json:"fonts,omitempty"`
}

// FieldDefinition is a bindable region discovered in a template. X/Y and
// Width/Height are percentages of the template box in [0,100] so extractor
// and renderer agree regardless of display zoom. SourceID is the durable link
// back into the SVG DOM; ID is the human-facing identifier and may carry a
// -2/-3 dedup suffix.
type FieldDefinition struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Type       FieldType `json:"type"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width,omitempty"`
	Height     float64   `json:"height,omitempty"`
	FontSize   float64   `json:"fontSize,omitempty"`
	Color      string    `json:"color,omitempty"`
	Align      Align     `json:"align"`
	FontFamily string    `json:"fontFamily,omitempty"`
	FontWeight string    `json:"fontWeight,omitempty"`
	Auto       bool      `json:"auto"`
	SourceID   string    `json:"sourceId,omitempty"`
	WrapWidth  float64   `json:"wrapWidth,omitempty"`
}

// FieldMapping is the externally persisted association between a detected SVG
// layer and a standard field name. The struct tags are the wire format; the
// literal strings are load-bearing because operators' stores are not
// migratable.
type FieldMapping struct {
	SVGLayerID        string `json:"svgLayerId" yaml:"svgLayerId"`
	StandardFieldName string `json:"standardFieldName" yaml:"standardFieldName"`
	CustomValue       string `json:"customValue,omitempty" yaml:"customValue,omitempty"`
}

// UserData is the flat per-person record cards are populated from. FirstName
// and LastName are required; everything else is optional. PhotoPath and
// SignaturePath accept either a file path or an inline base64 data URL.
type UserData struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	MiddleName       string `json:"middleName,omitempty"`
	StudentID        string `json:"studentId,omitempty"`
	Department       string `json:"department,omitempty"`
	Position         string `json:"position,omitempty"`
	Grade            string `json:"grade,omitempty"`
	Email            string `json:"email,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	PhotoPath        string `json:"photoPath,omitempty"`
	SignaturePath    string `json:"signaturePath,omitempty"`
	IssueDate        string `json:"issueDate,omitempty"`
	ExpiryDate       string `json:"expiryDate,omitempty"`
	BirthDate        string `json:"birthDate,omitempty"`
}

// Value is the closed union of resolved field values: plain text or an image
// reference. The renderer indexes CardData by FieldDefinition.ID and never
// sees UserData or FieldMapping directly.
type Value interface {
	isValue()
}

// TextValue is a resolved textual field value.
type TextValue string

func (TextValue) isValue() {}

// ImageValue references an image source plus placement adjustments. Scale
// defaults to 1; offsets are fractions of the placeholder box.
type ImageValue struct {
	Src     string  `json:"src"`
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

func (ImageValue) isValue() {}

// NewImageValue returns an ImageValue with the default scale applied.
func NewImageValue(src string) ImageValue {
	return ImageValue{Src: src, Scale: 1}
}

// CardData is the per-render value set, keyed by FieldDefinition.ID. It is
// built fresh for every render call and never persisted.
type CardData map[string]Value
