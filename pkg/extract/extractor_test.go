package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/extract"
	"github.com/goliatone/go-cardgen/pkg/model"
)

const placeholderTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
  <text id="{{field:fullName_First_Last}}" x="122" y="86" font-size="16">Student Name</text>
  <text id="{{field:studentId}}" x="122" y="110">Student ID</text>
  <g id="{{image:photo}}" x="22" y="62" width="84" height="108"></g>
  <g id="{{barcode:studentIdBarcode}}"></g>
  <text x="22" y="36">Plain header text</text>
</svg>`

func fieldByID(t *testing.T, fields []model.FieldDefinition, id string) model.FieldDefinition {
	t.Helper()
	for _, f := range fields {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("no field with id %q in %+v", id, fields)
	return model.FieldDefinition{}
}

func TestExtract_PlaceholdersTakePrecedence(t *testing.T) {
	result, err := extract.Extract([]byte(placeholderTemplate), "Student Card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// The plain header never becomes a field once explicit markers exist.
	if len(result.Fields) != 4 {
		t.Fatalf("got %d fields, want 4: %+v", len(result.Fields), result.Fields)
	}

	name := fieldByID(t, result.Fields, "fullName_First_Last")
	if name.Type != model.FieldTypeText {
		t.Fatalf("got type %q, want text", name.Type)
	}
	if name.SourceID != "{{field:fullName_First_Last}}" {
		t.Fatalf("sourceId must keep the literal marker, got %q", name.SourceID)
	}
	if name.Label != "Full Name First Last" {
		t.Fatalf("got label %q", name.Label)
	}
	if !name.Auto {
		t.Fatal("placeholder fields are auto-detected")
	}
	if name.FontSize != 16 {
		t.Fatalf("got font size %v, want 16", name.FontSize)
	}

	photo := fieldByID(t, result.Fields, "photo")
	if photo.Type != model.FieldTypeImage {
		t.Fatalf("got type %q, want image", photo.Type)
	}
	barcode := fieldByID(t, result.Fields, "studentIdBarcode")
	if barcode.Type != model.FieldTypeBarcode {
		t.Fatalf("got type %q, want barcode", barcode.Type)
	}
}

func TestExtract_PlaceholderPercentCoordinates(t *testing.T) {
	// viewBox is 325x204 user units; x=122 → 37.5...%, clamped to [0,100].
	result, err := extract.Extract([]byte(placeholderTemplate), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	name := fieldByID(t, result.Fields, "fullName_First_Last")
	wantX := 122.0 / 325.0 * 100
	if diff := name.X - wantX; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got X %v, want %v", name.X, wantX)
	}

	over := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	  <text id="{{field:firstName}}" x="650" y="-20">n</text>
	</svg>`
	result, err = extract.Extract([]byte(over), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	f := fieldByID(t, result.Fields, "firstName")
	if f.X != 100 {
		t.Fatalf("X beyond the box must clamp to 100, got %v", f.X)
	}
	if f.Y != 0 {
		t.Fatalf("negative Y must clamp to 0, got %v", f.Y)
	}
}

func TestExtract_PlaceholderFallbackOffsets(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	  <g id="{{field:firstName}}"></g>
	  <g id="{{field:lastName}}"></g>
	</svg>`
	result, err := extract.New(extract.WithFallbackOffsets(10, 8)).Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	first := fieldByID(t, result.Fields, "firstName")
	second := fieldByID(t, result.Fields, "lastName")
	if first.X != 10 || first.Y != 10 {
		t.Fatalf("first fallback position = (%v,%v), want (10,10)", first.X, first.Y)
	}
	if second.X != 18 || second.Y != 18 {
		t.Fatalf("second fallback position = (%v,%v), want (18,18)", second.X, second.Y)
	}
}

func TestExtract_DuplicateKeysSuffixed(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	  <text id="{{field:firstName}}" x="1" y="1">a</text>
	  <text id="{{field:firstName}}" x="1" y="2">b</text>
	  <text id="{{field:firstName}}" x="1" y="3">c</text>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(result.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(result.Fields))
	}
	if result.Fields[0].ID != "firstName" {
		t.Fatalf("first keeps its id, got %q", result.Fields[0].ID)
	}
	if result.Fields[1].ID != "firstName-2" || result.Fields[1].Label != "First Name-2" {
		t.Fatalf("second gets -2 suffix on id and label, got %q / %q", result.Fields[1].ID, result.Fields[1].Label)
	}
	if result.Fields[2].ID != "firstName-3" {
		t.Fatalf("third gets -3 suffix, got %q", result.Fields[2].ID)
	}
}

func TestExtract_AutoDetectTextFields(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
	  <style>.name { font-size: 18px; font-family: 'Inter', sans-serif; }</style>
	  <defs><text x="0" y="0">hidden</text></defs>
	  <text x="22" y="36" class="name" text-anchor="middle" fill="#333333">Jane Doe</text>
	  <text transform="translate(100,50)" x="5" y="6">Engineering</text>
	  <text x="10" y="60">   </text>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("got %d fields, want 2 (defs and whitespace nodes skipped): %+v", len(result.Fields), result.Fields)
	}

	jane := fieldByID(t, result.Fields, "jane-doe")
	if jane.Label != "Jane Doe" {
		t.Fatalf("got label %q", jane.Label)
	}
	if jane.FontSize != 18 {
		t.Fatalf("class font size not resolved, got %v", jane.FontSize)
	}
	if jane.FontFamily != "Inter" {
		t.Fatalf("got family %q, want Inter", jane.FontFamily)
	}
	if jane.Align != model.AlignCenter {
		t.Fatalf("text-anchor=middle maps to center, got %q", jane.Align)
	}
	if jane.Color != "#333333" {
		t.Fatalf("got color %q", jane.Color)
	}
	if jane.SourceID == "" {
		t.Fatal("auto fields must carry the patched element id")
	}

	eng := fieldByID(t, result.Fields, "engineering")
	wantX := (100.0 + 5.0) / 325.0 * 100
	if diff := eng.X - wantX; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("translate not composed with x: got %v, want %v", eng.X, wantX)
	}
}

func TestExtract_RepeatedExtractionStable(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
	  <text x="22" y="36">Jane Doe</text>
	  <text id="title" x="22" y="60">Engineering</text>
	  <g id="photoFrame"><rect x="20" y="10" width="50" height="60"/></g>
	  <text x="22" y="90">Issued 2026</text>
	</svg>`

	keys := func(fields []model.FieldDefinition) [][2]string {
		out := make([][2]string, len(fields))
		for i, f := range fields {
			out[i] = [2]string{f.ID, f.SourceID}
		}
		return out
	}

	first, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(first.Fields) == 0 {
		t.Fatal("expected auto-detected fields")
	}

	second, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract again: %v", err)
	}
	if diff := cmp.Diff(keys(first.Fields), keys(second.Fields)); diff != "" {
		t.Fatalf("id/sourceId sequences drifted between runs (-first +second):\n%s", diff)
	}

	// The normalized serialization must re-extract to the same sequences:
	// ids patched on the first pass are kept, not re-generated.
	again, err := extract.Extract([]byte(first.Meta.RawSVG), "card")
	if err != nil {
		t.Fatalf("extract normalized output: %v", err)
	}
	if diff := cmp.Diff(keys(first.Fields), keys(again.Fields)); diff != "" {
		t.Fatalf("normalized output drifted (-first +again):\n%s", diff)
	}
}

func TestExtract_MultilineWrapWidth(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
	  <text x="10" y="20" font-size="14">
	    <tspan x="10" y="20">first line of the address</tspan>
	    <tspan x="10" dy="17">second line</tspan>
	  </text>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(result.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(result.Fields))
	}
	if result.Fields[0].WrapWidth <= 0 {
		t.Fatalf("multi-line text must record a wrap width, got %v", result.Fields[0].WrapWidth)
	}

	single := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
	  <text x="10" y="20"><tspan x="10" y="20">one line</tspan></text>
	</svg>`
	result, err = extract.Extract([]byte(single), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Fields[0].WrapWidth != 0 {
		t.Fatalf("single-line text carries no wrap width, got %v", result.Fields[0].WrapWidth)
	}
}

func TestExtract_ImageGroups(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
	  <g id="photoFrame"><rect x="20" y="10" width="50" height="60"/></g>
	  <g id="decoration"><rect x="0" y="0" width="5" height="5"/></g>
	  <g id="imageBox"></g>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(result.Fields) != 1 {
		t.Fatalf("only photo groups wrapping a rect qualify, got %+v", result.Fields)
	}
	photo := result.Fields[0]
	if photo.Type != model.FieldTypeImage {
		t.Fatalf("got type %q, want image", photo.Type)
	}
	if photo.SourceID != "photoFrame" {
		t.Fatalf("got sourceId %q", photo.SourceID)
	}
	if photo.X != 10 || photo.Y != 10 || photo.Width != 25 || photo.Height != 60 {
		t.Fatalf("geometry mismatch: %+v", photo)
	}
}

func TestExtract_Dimensions(t *testing.T) {
	cases := []struct {
		name       string
		svg        string
		wantWidth  float64
		wantHeight float64
		wantUnit   model.Unit
	}{
		{
			name:       "explicit mm",
			svg:        `<svg xmlns="http://www.w3.org/2000/svg" width="86mm" height="54mm"></svg>`,
			wantWidth:  86,
			wantHeight: 54,
			wantUnit:   model.UnitMM,
		},
		{
			name:       "viewBox fallback",
			svg:        `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1011 638"></svg>`,
			wantWidth:  1011,
			wantHeight: 638,
			wantUnit:   model.UnitPX,
		},
		{
			name:       "card default",
			svg:        `<svg xmlns="http://www.w3.org/2000/svg"></svg>`,
			wantWidth:  86,
			wantHeight: 54,
			wantUnit:   model.UnitMM,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := extract.Extract([]byte(tc.svg), "card")
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			meta := result.Meta
			if meta.Width != tc.wantWidth || meta.Height != tc.wantHeight || meta.Unit != tc.wantUnit {
				t.Fatalf("got %v x %v %s, want %v x %v %s",
					meta.Width, meta.Height, meta.Unit, tc.wantWidth, tc.wantHeight, tc.wantUnit)
			}
		})
	}
}

func TestExtract_NoSVGRoot(t *testing.T) {
	_, err := extract.Extract([]byte(`<html><body>nope</body></html>`), "card")
	if !errors.Is(err, extract.ErrNoSVGRoot) {
		t.Fatalf("got %v, want ErrNoSVGRoot", err)
	}
}

func TestExtract_EnsureIDsInSerializedOutput(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	  <text x="1" y="2">hello there</text>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	field := result.Fields[0]
	if field.SourceID == "" {
		t.Fatal("field must reference a patched id")
	}
	if !strings.Contains(result.Meta.RawSVG, `id="`+field.SourceID+`"`) {
		t.Fatalf("serialized output must contain the patched id %q:\n%s", field.SourceID, result.Meta.RawSVG)
	}
}

func TestExtract_FontInventory(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	  <style>.a { font-family: 'Roboto Condensed'; }</style>
	  <text x="1" y="2" font-family="Inter, sans-serif">a</text>
	  <text x="1" y="3" style="font-family: Arial">b</text>
	</svg>`
	result, err := extract.Extract([]byte(raw), "card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{"Arial", "Inter", "Roboto Condensed", "sans-serif"}
	if len(result.Meta.Fonts) != len(want) {
		t.Fatalf("got fonts %v, want %v", result.Meta.Fonts, want)
	}
	for i, name := range want {
		if result.Meta.Fonts[i] != name {
			t.Fatalf("got fonts %v, want %v", result.Meta.Fonts, want)
		}
	}
}
