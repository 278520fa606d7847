package svgdoc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	internalmodel "github.com/goliatone/go-cardgen/internal/model"
)

var (
	lengthPattern    = regexp.MustCompile(`^\s*(-?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*([a-z%]*)\s*$`)
	translatePattern = regexp.MustCompile(`translate\(\s*(-?[0-9.eE+]+)(?:[\s,]+(-?[0-9.eE+]+))?\s*\)`)
)

// ParseFloat reads a bare SVG numeric attribute, tolerating surrounding
// whitespace and a unit suffix.
func ParseFloat(s string) (float64, bool) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLength reads a dimension attribute such as "86mm" or "1011", returning
// the value and the unit it normalizes to. Physical units collapse to mm,
// everything else to px.
func ParseLength(s string) (float64, internalmodel.Unit, bool) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, internalmodel.UnitPX, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, internalmodel.UnitPX, false
	}

	switch m[2] {
	case "mm":
		return v, internalmodel.UnitMM, true
	case "cm":
		return v * 10, internalmodel.UnitMM, true
	case "in":
		return v * 25.4, internalmodel.UnitMM, true
	case "pt":
		return v * 96.0 / 72.0, internalmodel.UnitPX, true
	case "", "px":
		return v, internalmodel.UnitPX, true
	default:
		return 0, internalmodel.UnitPX, false
	}
}

// ParseViewBox reads the four viewBox components.
func ParseViewBox(s string) (*internalmodel.ViewBox, bool) {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(parts) != 4 {
		return nil, false
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return &internalmodel.ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}, true
}

// ParseTranslate extracts the translation component of a transform attribute.
// Rotations and scales are ignored; exported templates carry positioning in
// translate() plus per-node x/y.
func ParseTranslate(transform string) (x, y float64, ok bool) {
	m := translatePattern.FindStringSubmatch(transform)
	if m == nil {
		return 0, 0, false
	}
	x, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	if m[2] != "" {
		y, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, 0, false
		}
	}
	return x, y, true
}

// AttrFloat reads a numeric attribute, reporting absence or malformed values
// through ok=false.
func AttrFloat(el *etree.Element, key string) (float64, bool) {
	raw := el.SelectAttrValue(key, "")
	if raw == "" {
		return 0, false
	}
	return ParseFloat(raw)
}
