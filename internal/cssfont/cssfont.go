// Package cssfont derives per-class style lookups from the <style> blocks of
// an SVG template. Exported designs frequently carry font sizing only in CSS
// classes; the extractor needs those values to describe fields and the
// renderer needs them baked into attributes before tspans are replaced.
package cssfont

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/svgdoc"
)

var classPattern = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_-]*)`)

// Styles holds declarations keyed by CSS class name. Later rules win, the
// same way a browser would cascade equal-specificity class selectors.
type Styles struct {
	classes map[string]map[string]string
}

// FromDocument scans every <style> element of the document and parses the
// combined rule set. Malformed CSS is not an extraction failure: whatever
// parses contributes, the rest is ignored.
func FromDocument(doc *svgdoc.Document) Styles {
	var sb strings.Builder
	doc.Walk(func(el *etree.Element) bool {
		if el.Tag == "style" {
			sb.WriteString(svgdoc.TextContent(el))
			sb.WriteString("\n")
		}
		return true
	})
	return Parse(sb.String())
}

// Parse builds Styles from raw CSS text.
func Parse(cssText string) Styles {
	styles := Styles{classes: make(map[string]map[string]string)}
	if strings.TrimSpace(cssText) == "" {
		return styles
	}
	sheet, err := parser.Parse(cssText)
	if err != nil {
		return styles
	}
	styles.addRules(sheet.Rules)
	return styles
}

func (s Styles) addRules(rules []*css.Rule) {
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		// at-rules such as @media nest their qualified rules
		if len(rule.Rules) > 0 {
			s.addRules(rule.Rules)
		}
		if len(rule.Declarations) == 0 {
			continue
		}
		for _, selector := range rule.Selectors {
			for _, match := range classPattern.FindAllStringSubmatch(selector, -1) {
				class := match[1]
				decls := s.classes[class]
				if decls == nil {
					decls = make(map[string]string)
					s.classes[class] = decls
				}
				for _, decl := range rule.Declarations {
					if decl == nil {
						continue
					}
					decls[strings.ToLower(decl.Property)] = strings.TrimSpace(decl.Value)
				}
			}
		}
	}
}

// Value resolves a property for a space-separated class attribute. Classes
// are consulted in attribute order; the first one carrying the property wins.
func (s Styles) Value(classAttr, property string) (string, bool) {
	property = strings.ToLower(property)
	for _, class := range strings.Fields(classAttr) {
		if decls, ok := s.classes[class]; ok {
			if v, ok := decls[property]; ok && v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// FontSize resolves a class-declared font size in pixels.
func (s Styles) FontSize(classAttr string) (float64, bool) {
	raw, ok := s.Value(classAttr, "font-size")
	if !ok {
		return 0, false
	}
	return ParseFontSize(raw)
}

// FontFamilies returns every distinct font-family declaration collected from
// class rules, in unspecified order.
func (s Styles) FontFamilies() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, decls := range s.classes {
		if v, ok := decls["font-family"]; ok && v != "" {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	return out
}

// Empty reports whether no class rules were collected.
func (s Styles) Empty() bool {
	return len(s.classes) == 0
}

// ParseFontSize reads a CSS font-size value in px (a bare number counts as
// px; other units are approximated the way rasterizers treat them at 96dpi).
func ParseFontSize(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(v, ";"))
	unit := ""
	for _, suffix := range []string{"px", "pt", "em", "rem"} {
		if strings.HasSuffix(v, suffix) {
			unit = suffix
			v = strings.TrimSpace(strings.TrimSuffix(v, suffix))
			break
		}
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	switch unit {
	case "pt":
		return n * 96.0 / 72.0, true
	case "em", "rem":
		return n * 16, true
	default:
		return n, true
	}
}

// InlineStyle parses a style="" attribute into a property map.
func InlineStyle(style string) map[string]string {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(decls))
	for _, decl := range decls {
		if decl == nil {
			continue
		}
		out[strings.ToLower(decl.Property)] = strings.TrimSpace(decl.Value)
	}
	return out
}
