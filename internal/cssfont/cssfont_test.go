package cssfont

import (
	"testing"

	"github.com/goliatone/go-cardgen/internal/svgdoc"
)

func TestParse_ClassRules(t *testing.T) {
	styles := Parse(`
		.name { font-size: 16px; font-family: 'Inter', sans-serif; }
		.detail, .footer { font-size: 11px; fill: #333; }
	`)

	size, ok := styles.FontSize("name")
	if !ok || size != 16 {
		t.Fatalf("got %v/%v, want 16", size, ok)
	}
	size, ok = styles.FontSize("footer")
	if !ok || size != 11 {
		t.Fatalf("multi-selector rule must apply to every class, got %v/%v", size, ok)
	}
	if v, ok := styles.Value("detail", "fill"); !ok || v != "#333" {
		t.Fatalf("got %q/%v", v, ok)
	}
	if _, ok := styles.Value("missing", "fill"); ok {
		t.Fatal("unknown class must not resolve")
	}
}

func TestParse_MultipleClassesFirstWins(t *testing.T) {
	styles := Parse(`.a { font-size: 10px; } .b { font-size: 20px; }`)
	size, ok := styles.FontSize("a b")
	if !ok || size != 10 {
		t.Fatalf("first class carrying the property wins, got %v", size)
	}
	size, ok = styles.FontSize("c b")
	if !ok || size != 20 {
		t.Fatalf("classes without the property are skipped, got %v", size)
	}
}

func TestParse_MediaQueriesRecursed(t *testing.T) {
	styles := Parse(`@media print { .name { font-size: 12px; } }`)
	size, ok := styles.FontSize("name")
	if !ok || size != 12 {
		t.Fatalf("rules nested in at-rules must be collected, got %v/%v", size, ok)
	}
}

func TestParse_MalformedCSSIgnored(t *testing.T) {
	styles := Parse(`.broken { font-size }{{{`)
	if !styles.Empty() {
		// whatever parses may contribute; the call itself must not fail
		t.Log("partial parse collected rules")
	}
	if _, ok := styles.FontSize("broken"); ok {
		t.Fatal("malformed declaration must not produce a size")
	}
}

func TestFromDocument(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg">
	  <style>.a { font-size: 9px; }</style>
	  <defs><style>.b { font-size: 13px; font-family: Arial; }</style></defs>
	</svg>`
	doc, err := svgdoc.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	styles := FromDocument(doc)
	if size, ok := styles.FontSize("a"); !ok || size != 9 {
		t.Fatalf("got %v/%v", size, ok)
	}
	if size, ok := styles.FontSize("b"); !ok || size != 13 {
		t.Fatalf("every style block contributes, got %v/%v", size, ok)
	}
	families := styles.FontFamilies()
	if len(families) != 1 || families[0] != "Arial" {
		t.Fatalf("got families %v", families)
	}
}

func TestParseFontSize(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"16px", 16, true},
		{"16", 16, true},
		{" 12.5px ", 12.5, true},
		{"12pt", 16, true},
		{"1em", 16, true},
		{"1.5rem", 24, true},
		{"0", 0, false},
		{"-4px", 0, false},
		{"large", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFontSize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseFontSize(%q) = %v/%v, want %v/%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInlineStyle(t *testing.T) {
	decls := InlineStyle("font-size: 14px; Fill: #fff;")
	if decls["font-size"] != "14px" {
		t.Fatalf("got %v", decls)
	}
	if decls["fill"] != "#fff" {
		t.Fatalf("property keys are lowercased, got %v", decls)
	}
	if InlineStyle("   ") != nil {
		t.Fatal("blank style resolves to nil")
	}
}
