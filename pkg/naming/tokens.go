package naming

import (
	"sort"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/model"
)

// capitalization is the closed set of casing transforms. Wire keywords map
// onto it through the capitalizations table; anything else is a no-op.
type capitalization int

const (
	capNone capitalization = iota
	capUpper
	capTitle
	capLower
)

var capitalizations = map[string]capitalization{
	"allcaps":   capUpper,
	"upper":     capUpper,
	"titlecase": capTitle,
	"title":     capTitle,
	"lowercase": capLower,
	"lower":     capLower,
}

// compositeToken is the closed set of fullName format parts.
type compositeToken int

const (
	tokenFirst compositeToken = iota
	tokenLast
	tokenMiddleName
	tokenMiddleInitial
	tokenComma
)

var compositeTokens = map[string]compositeToken{
	"first":         tokenFirst,
	"last":          tokenLast,
	"middlename":    tokenMiddleName,
	"middleinitial": tokenMiddleInitial,
	"comma":         tokenComma,
}

// imageFields maps image type names (lowercased) to their UserData source.
// Logo has no per-user source; it resolves empty and the template's own
// artwork stays in place.
var imageFields = map[string]func(model.UserData) string{
	"photo":        func(u model.UserData) string { return u.PhotoPath },
	"profilephoto": func(u model.UserData) string { return u.PhotoPath },
	"signature":    func(u model.UserData) string { return u.SignaturePath },
	"logo":         func(model.UserData) string { return "" },
}

// scalarFields maps simple type names (lowercased) to their UserData getter.
// The canonical wire spellings live in scalarWireNames.
var scalarFields = map[string]func(model.UserData) string{
	"firstname":        func(u model.UserData) string { return u.FirstName },
	"lastname":         func(u model.UserData) string { return u.LastName },
	"middlename":       func(u model.UserData) string { return u.MiddleName },
	"studentid":        func(u model.UserData) string { return u.StudentID },
	"department":       func(u model.UserData) string { return u.Department },
	"position":         func(u model.UserData) string { return u.Position },
	"grade":            func(u model.UserData) string { return u.Grade },
	"email":            func(u model.UserData) string { return u.Email },
	"phonenumber":      func(u model.UserData) string { return u.PhoneNumber },
	"address":          func(u model.UserData) string { return u.Address },
	"emergencycontact": func(u model.UserData) string { return u.EmergencyContact },
	"issuedate":        func(u model.UserData) string { return u.IssueDate },
	"expirydate":       func(u model.UserData) string { return u.ExpiryDate },
	"birthdate":        func(u model.UserData) string { return u.BirthDate },
}

// scalarWireNames are the canonical persisted spellings of the simple types.
var scalarWireNames = []string{
	"firstName",
	"lastName",
	"middleName",
	"studentId",
	"department",
	"position",
	"grade",
	"email",
	"phoneNumber",
	"address",
	"emergencyContact",
	"issueDate",
	"expiryDate",
	"birthDate",
}

var imageWireNames = []string{
	"photo",
	"signature",
	"logo",
	"profilePhoto",
}

// fullNamePresets are common composite spellings offered by mapping tools.
// Operators may author any token combination; these are starting points, not
// the full vocabulary.
var fullNamePresets = []string{
	"fullName_First_Last",
	"fullName_First_MiddleInitial_Last",
	"fullName_Last_Comma_First",
	"fullName_Last_Comma_First_MiddleInitial",
	"fullName_Last_Comma_First_MiddleInitial_AllCaps",
}

// StandardFieldNames returns the canonical vocabulary a mapping tool should
// offer: scalar types, image types, and common fullName presets, sorted.
func StandardFieldNames() []string {
	out := make([]string, 0, len(scalarWireNames)+len(imageWireNames)+len(fullNamePresets))
	out = append(out, scalarWireNames...)
	out = append(out, imageWireNames...)
	out = append(out, fullNamePresets...)
	sort.Strings(out)
	return out
}

// IsKnown reports whether the field name's base type is part of the grammar.
// Format and capitalization segments are not validated; the resolver skips
// unknown ones.
func IsKnown(fieldName string) bool {
	base := strings.ToLower(strings.Split(fieldName, "_")[0])
	if base == "fullname" {
		return true
	}
	if _, ok := imageFields[base]; ok {
		return true
	}
	_, ok := scalarFields[base]
	return ok
}

// IsImage reports whether the field name resolves to an image source.
func IsImage(fieldName string) bool {
	base := strings.ToLower(strings.Split(fieldName, "_")[0])
	_, ok := imageFields[base]
	return ok
}
