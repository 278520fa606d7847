package extract

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/pkg/model"
)

// placeholderPattern matches explicit marker ids of the form {{kind:name}}.
var placeholderPattern = regexp.MustCompile(`^\{\{([a-zA-Z]+):([^{}]+)\}\}$`)

// placeholderKinds maps marker kinds onto field types. Unrecognized kinds
// default to text rather than failing, tolerating designer typos.
var placeholderKinds = map[string]model.FieldType{
	"field":   model.FieldTypeText,
	"image":   model.FieldTypeImage,
	"barcode": model.FieldTypeBarcode,
	"date":    model.FieldTypeDate,
}

// isPlaceholderID reports whether an element id is an explicit marker.
func isPlaceholderID(id string) bool {
	return placeholderPattern.MatchString(id)
}

// placeholderFields collects every explicit {{kind:name}} marker in document
// order. Position and size come from the element's own attributes; elements
// without them get stepped fallback offsets so stacked markers stay
// individually visible in a designer.
func (e *Extractor) placeholderFields(doc *svgdoc.Document, boxW, boxH float64) []model.FieldDefinition {
	var fields []model.FieldDefinition
	doc.Walk(func(el *etree.Element) bool {
		id := el.SelectAttrValue("id", "")
		m := placeholderPattern.FindStringSubmatch(id)
		if m == nil {
			return true
		}

		kind := strings.ToLower(m[1])
		name := strings.TrimSpace(m[2])
		fieldType, ok := placeholderKinds[kind]
		if !ok {
			fieldType = model.FieldTypeText
		}

		index := len(fields)
		fallback := clampPercent(e.offsetBase + e.offsetStep*float64(index))

		field := model.FieldDefinition{
			ID:       name,
			Label:    humanize(name),
			Type:     fieldType,
			Align:    model.AlignLeft,
			Auto:     true,
			SourceID: id,
			X:        fallback,
			Y:        fallback,
		}
		if x, ok := svgdoc.AttrFloat(el, "x"); ok {
			field.X = percent(x, boxW)
		}
		if y, ok := svgdoc.AttrFloat(el, "y"); ok {
			field.Y = percent(y, boxH)
		}
		if w, ok := svgdoc.AttrFloat(el, "width"); ok {
			field.Width = percent(w, boxW)
		}
		if h, ok := svgdoc.AttrFloat(el, "height"); ok {
			field.Height = percent(h, boxH)
		}
		if size, ok := svgdoc.AttrFloat(el, "font-size"); ok {
			field.FontSize = size
		}

		fields = append(fields, field)
		return true
	})
	return fields
}

// humanize turns a marker or layer name into a display label: camelCase and
// separator-delimited words become space-separated Title Case.
func humanize(name string) string {
	if name == "" {
		return name
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	var prev rune
	for i, r := range name {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			flush()
		case r >= 'A' && r <= 'Z' && i > 0 && !(prev >= 'A' && prev <= 'Z'):
			// split camelCase boundaries but keep acronym runs together
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
