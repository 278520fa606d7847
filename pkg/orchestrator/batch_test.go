package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/renderers/svg"
)

// flakyRenderer fails whenever the bound name matches its trigger, standing
// in for per-card failures such as unreadable photo paths.
type flakyRenderer struct {
	inner   render.Renderer
	fieldID string
	trigger string
}

func (f *flakyRenderer) Name() string        { return "flaky" }
func (f *flakyRenderer) ContentType() string { return f.inner.ContentType() }

func (f *flakyRenderer) Render(ctx context.Context, card render.Card, options render.RenderOptions) ([]byte, error) {
	if v, ok := card.Data[f.fieldID]; ok && v == model.TextValue(f.trigger) {
		return nil, errors.New("flaky: simulated failure")
	}
	return f.inner.Render(ctx, card, options)
}

func TestGenerateBatch(t *testing.T) {
	gen := orchestrator.New()

	result, err := gen.GenerateBatch(context.Background(), orchestrator.BatchRequest{
		Document: inlineDocument(t),
		Users: []model.UserData{
			{FirstName: "Maria", LastName: "Nguyen", StudentID: "S-1"},
			{FirstName: "Deshawn", LastName: "Carter", StudentID: "S-2"},
			{FirstName: "Priya", LastName: "Patel", StudentID: "S-3"},
		},
		Mappings: cardMappings,
		Workers:  2,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	if result.BatchID == "" {
		t.Fatal("batch id must be assigned")
	}
	if len(result.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(result.Cards))
	}
	if result.Failed() != 0 {
		t.Fatalf("no card should fail: %+v", result.Cards)
	}

	seen := make(map[string]struct{})
	for i, card := range result.Cards {
		if card.Index != i {
			t.Fatalf("card %d has index %d", i, card.Index)
		}
		if card.ID == "" {
			t.Fatalf("card %d has no id", i)
		}
		if _, dup := seen[card.ID]; dup {
			t.Fatalf("duplicate card id %q", card.ID)
		}
		seen[card.ID] = struct{}{}
	}

	if !strings.Contains(string(result.Cards[1].Output), "Deshawn Carter") {
		t.Fatalf("card 1 bound the wrong user:\n%s", result.Cards[1].Output)
	}
}

func TestGenerateBatch_FailureIsolation(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(&flakyRenderer{
		inner:   svg.New(),
		fieldID: "fullName_First_Last",
		trigger: "Boom Boom",
	})
	gen := orchestrator.New(
		orchestrator.WithRegistry(reg),
		orchestrator.WithDefaultRenderer("flaky"),
	)

	result, err := gen.GenerateBatch(context.Background(), orchestrator.BatchRequest{
		Document: inlineDocument(t),
		Users: []model.UserData{
			{FirstName: "Maria", LastName: "Nguyen"},
			{FirstName: "Boom", LastName: "Boom"},
			{FirstName: "Priya", LastName: "Patel"},
		},
		Mappings: cardMappings,
	})
	if err != nil {
		t.Fatalf("batch must not abort on a single card: %v", err)
	}

	if result.Failed() != 1 {
		t.Fatalf("exactly one card should fail: %+v", result.Cards)
	}
	if result.Cards[1].Err == nil {
		t.Fatal("the failing user's card must carry its error")
	}
	if result.Cards[0].Err != nil || result.Cards[2].Err != nil {
		t.Fatal("neighbouring cards must render normally")
	}
	if len(result.Cards[2].Output) == 0 {
		t.Fatal("card after the failure must still have output")
	}
}

func TestGenerateBatch_Validation(t *testing.T) {
	gen := orchestrator.New()

	if _, err := gen.GenerateBatch(context.Background(), orchestrator.BatchRequest{
		Document: inlineDocument(t),
	}); err == nil {
		t.Fatal("empty user list must fail")
	}
	if _, err := gen.GenerateBatch(context.Background(), orchestrator.BatchRequest{
		Users: []model.UserData{{FirstName: "A"}},
	}); err == nil {
		t.Fatal("missing template must fail")
	}
}
