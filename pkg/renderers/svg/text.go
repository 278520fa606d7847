package svg

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/internal/textmetrics"
	"github.com/goliatone/go-cardgen/pkg/model"
)

// bindText populates a text field. A field with no CardData entry is left
// untouched so the template's own placeholder text shows through; a mapped
// field whose value is blank for this user is hidden via aria-hidden instead
// of leaking the placeholder.
func bindText(el *etree.Element, field model.FieldDefinition, value model.Value, hasValue bool) {
	if !hasValue {
		return
	}
	tv, ok := value.(model.TextValue)
	if !ok {
		return
	}
	text := string(tv)

	if strings.TrimSpace(text) == "" {
		el.CreateAttr("aria-hidden", "true")
		return
	}
	el.RemoveAttr("aria-hidden")

	// capture the original baseline before children are cleared
	baseX, baseY := baseline(el)
	fontSize := effectiveFontSize(el, field)

	var lines []string
	if field.WrapWidth > 0 {
		lines = textmetrics.Wrap(text, fontSize, field.WrapWidth)
	} else {
		lines = strings.Split(text, "\n")
	}

	svgdoc.RemoveChildren(el)

	if len(lines) == 1 {
		// single line keeps residual styling on the <text> node itself
		el.SetText(lines[0])
		if el.SelectAttrValue("x", "") == "" {
			el.CreateAttr("x", formatNumber(baseX))
		}
		if el.SelectAttrValue("y", "") == "" {
			el.CreateAttr("y", formatNumber(baseY))
		}
	} else {
		for i, line := range lines {
			ts := el.CreateElement("tspan")
			ts.CreateAttr("x", formatNumber(baseX))
			if i == 0 {
				ts.CreateAttr("y", formatNumber(baseY))
			} else {
				ts.CreateAttr("dy", formatNumber(fontSize*lineHeight))
			}
			ts.SetText(line)
		}
	}

	// write styling as explicit attributes so it survives without the
	// original CSS classes
	if field.FontFamily != "" {
		el.CreateAttr("font-family", field.FontFamily)
	}
	if field.FontWeight != "" {
		el.CreateAttr("font-weight", field.FontWeight)
	}
	if field.Color != "" {
		el.CreateAttr("fill", field.Color)
	}
	switch field.Align {
	case model.AlignCenter:
		el.CreateAttr("text-anchor", "middle")
	case model.AlignRight:
		el.CreateAttr("text-anchor", "end")
	default:
		el.RemoveAttr("text-anchor")
	}
}

// baseline reads the field's anchor point: the node's own x/y, refined by the
// first tspan when it carries the real baseline.
func baseline(el *etree.Element) (float64, float64) {
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
	return x, y
}

// effectiveFontSize prefers the size baked onto the node (or its first
// tspan), then the field definition, then the default.
func effectiveFontSize(el *etree.Element, field model.FieldDefinition) float64 {
	if size, ok := svgdoc.AttrFloat(el, "font-size"); ok && size > 0 {
		return size
	}
	if ts := el.SelectElement("tspan"); ts != nil {
		if size, ok := svgdoc.AttrFloat(ts, "font-size"); ok && size > 0 {
			return size
		}
	}
	if field.FontSize > 0 {
		return field.FontSize
	}
	return defaultFontSize
}
