package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/cssfont"
	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/internal/textmetrics"
	"github.com/goliatone/go-cardgen/pkg/model"
)

// imageGroupPattern identifies groups whose id marks them as photo slots.
var imageGroupPattern = regexp.MustCompile(`(?i)photo|image`)

const defaultFontSize = 16

// textFields turns every <text> node outside <defs> with non-empty content
// into a field candidate. Runs only when the template carries no explicit
// placeholder markers.
func (e *Extractor) textFields(doc *svgdoc.Document, styles cssfont.Styles, boxW, boxH float64) []model.FieldDefinition {
	var fields []model.FieldDefinition
	doc.Walk(func(el *etree.Element) bool {
		if el.Tag != "text" || svgdoc.InsideTag(el, "defs") {
			return true
		}
		content := strings.TrimSpace(svgdoc.TextContent(el))
		if content == "" {
			return true
		}

		posX, posY := textPosition(el)
		inline := cssfont.InlineStyle(el.SelectAttrValue("style", ""))
		class := el.SelectAttrValue("class", "")

		fontSize := resolveFontSize(el, inline, styles, class)
		family := resolveStyleValue(el, inline, styles, class, "font-family")
		weight := resolveStyleValue(el, inline, styles, class, "font-weight")
		fill := resolveStyleValue(el, inline, styles, class, "fill")

		field := model.FieldDefinition{
			ID:         slug(content),
			Label:      truncate(content, 48),
			Type:       model.FieldTypeText,
			X:          percent(posX, boxW),
			Y:          percent(posY, boxH),
			FontSize:   fontSize,
			Color:      fill,
			Align:      alignFromAnchor(resolveStyleValue(el, inline, styles, class, "text-anchor")),
			FontFamily: cleanFontFamily(family),
			FontWeight: weight,
			Auto:       true,
			SourceID:   el.SelectAttrValue("id", ""),
		}

		// Multi-line text keeps its visual width: when tspans span more than
		// one baseline, measure the widest line so edited text re-wraps to
		// the same box.
		if lines := tspanLines(el, posY); len(lines) > 1 {
			size := fontSize
			if size <= 0 {
				size = defaultFontSize
			}
			widest := 0.0
			for _, line := range lines {
				if w := textmetrics.Width(line, size); w > widest {
					widest = w
				}
			}
			field.WrapWidth = widest
		}

		fields = append(fields, field)
		return true
	})
	return fields
}

// imageFields finds photo placeholder groups: a <g> whose id contains
// "photo" or "image" (and is not an explicit marker) wrapping a <rect> that
// defines the slot geometry.
func (e *Extractor) imageFields(doc *svgdoc.Document, boxW, boxH float64) []model.FieldDefinition {
	var fields []model.FieldDefinition
	doc.Walk(func(el *etree.Element) bool {
		if el.Tag != "g" {
			return true
		}
		id := el.SelectAttrValue("id", "")
		if id == "" || !imageGroupPattern.MatchString(id) || isPlaceholderID(id) {
			return true
		}
		rect := svgdoc.FirstChildElement(el, "rect", true)
		if rect == nil {
			return true
		}

		field := model.FieldDefinition{
			ID:       slug(id),
			Label:    humanize(id),
			Type:     model.FieldTypeImage,
			Align:    model.AlignLeft,
			Auto:     true,
			SourceID: id,
		}
		if x, ok := svgdoc.AttrFloat(rect, "x"); ok {
			field.X = percent(x, boxW)
		}
		if y, ok := svgdoc.AttrFloat(rect, "y"); ok {
			field.Y = percent(y, boxH)
		}
		if w, ok := svgdoc.AttrFloat(rect, "width"); ok {
			field.Width = percent(w, boxW)
		}
		if h, ok := svgdoc.AttrFloat(rect, "height"); ok {
			field.Height = percent(h, boxH)
		}

		fields = append(fields, field)
		return true
	})
	return fields
}

// textPosition composes the node's translate() with its own x/y attributes,
// refined by the first tspan's explicit x/y: exported SVGs frequently carry
// the real baseline on the tspan, not the text element.
func textPosition(el *etree.Element) (float64, float64) {
	tx, ty, _ := svgdoc.ParseTranslate(el.SelectAttrValue("transform", ""))
	x, _ := svgdoc.AttrFloat(el, "x")
	y, _ := svgdoc.AttrFloat(el, "y")

	if ts := el.SelectElement("tspan"); ts != nil {
		if tsx, ok := svgdoc.AttrFloat(ts, "x"); ok {
			x = tsx
		}
		if tsy, ok := svgdoc.AttrFloat(ts, "y"); ok {
			y = tsy
		}
	}
	return tx + x, ty + y
}

// tspanLines groups tspans by effective cumulative y position: explicit y
// attributes reset the baseline, dy attributes increment it. One group per
// line, document order preserved.
func tspanLines(el *etree.Element, baseY float64) []string {
	tspans := el.SelectElements("tspan")
	if len(tspans) == 0 {
		return nil
	}

	type group struct {
		key  float64
		text strings.Builder
	}
	var groups []*group
	byKey := make(map[float64]*group)

	cur := baseY
	for _, ts := range tspans {
		if y, ok := svgdoc.AttrFloat(ts, "y"); ok {
			cur = y
		} else if dy, ok := svgdoc.AttrFloat(ts, "dy"); ok {
			cur += dy
		}
		key := math.Round(cur*100) / 100
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.text.WriteString(svgdoc.TextContent(ts))
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, strings.TrimSpace(g.text.String()))
	}
	return lines
}

func resolveFontSize(el *etree.Element, inline map[string]string, styles cssfont.Styles, class string) float64 {
	if size, ok := svgdoc.AttrFloat(el, "font-size"); ok {
		return size
	}
	if inline != nil {
		if size, ok := cssfont.ParseFontSize(inline["font-size"]); ok {
			return size
		}
	}
	if size, ok := styles.FontSize(class); ok {
		return size
	}
	return 0
}

// resolveStyleValue checks, in order: the direct attribute, the inline style
// attribute, then CSS class rules.
func resolveStyleValue(el *etree.Element, inline map[string]string, styles cssfont.Styles, class, property string) string {
	if v := el.SelectAttrValue(property, ""); v != "" {
		return v
	}
	if inline != nil {
		if v := inline[property]; v != "" {
			return v
		}
	}
	if v, ok := styles.Value(class, property); ok {
		return v
	}
	return ""
}

func alignFromAnchor(anchor string) model.Align {
	switch strings.TrimSpace(anchor) {
	case "middle":
		return model.AlignCenter
	case "end":
		return model.AlignRight
	default:
		return model.AlignLeft
	}
}

func cleanFontFamily(v string) string {
	first := strings.Split(v, ",")[0]
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// slug derives a stable field id from text content or a layer id: lowercase
// alphanumeric runs joined by hyphens, capped so labels stay the readable
// part.
func slug(s string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteRune('-')
				lastDash = true
			}
		}
		if sb.Len() >= 40 {
			break
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" {
		return "field"
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
