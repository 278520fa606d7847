package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-cardgen/pkg/extract"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/testsupport"
)

const (
	idCardFixture = "../../examples/fixtures/id-card.svg"
	idCardGolden  = "testdata/id-card-fields.json"
)

// fieldIdentity drops per-run geometry so the golden pins the stable field
// inventory: ids, labels, kinds, and the DOM links back into the template.
func fieldIdentity(fields []model.FieldDefinition) []model.FieldDefinition {
	out := make([]model.FieldDefinition, len(fields))
	for i, f := range fields {
		out[i] = model.FieldDefinition{
			ID:       f.ID,
			Label:    f.Label,
			Type:     f.Type,
			Align:    f.Align,
			Auto:     f.Auto,
			SourceID: f.SourceID,
		}
	}
	return out
}

func TestExtract_IDCardFixture(t *testing.T) {
	doc := testsupport.LoadTemplate(t, idCardFixture)

	result, err := extract.Extract(doc.Raw(), "id-card")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Meta.Width != 86 || result.Meta.Height != 54 || result.Meta.Unit != model.UnitMM {
		t.Fatalf("got dimensions %v x %v %s, want 86 x 54 mm", result.Meta.Width, result.Meta.Height, result.Meta.Unit)
	}

	got := fieldIdentity(result.Fields)
	payload, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("marshal fields: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, idCardGolden, append(payload, '\n')) {
		return
	}

	want := testsupport.MustLoadFields(t, idCardGolden)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("field inventory mismatch (-want +got):\n%s", diff)
	}
}
