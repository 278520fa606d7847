package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/template"
)

const defaultBatchWorkers = 4

// BatchRequest renders the same template once per user. The template is
// loaded and extracted a single time and shared across all cards.
type BatchRequest struct {
	Source   template.Source
	Document *template.Document
	Name     string

	Users    []model.UserData
	Mappings []model.FieldMapping

	Renderer      string
	RenderOptions render.RenderOptions

	// Workers bounds render concurrency. Values below one fall back to the
	// default.
	Workers int
}

// BatchCard holds one rendered card or its failure. Index points back into
// BatchRequest.Users.
type BatchCard struct {
	ID     string
	Index  int
	Output []byte
	Err    error
}

// BatchResult aggregates the outcome of a batch run.
type BatchResult struct {
	BatchID string
	Cards   []BatchCard
}

// Failed reports how many cards did not render.
func (r BatchResult) Failed() int {
	n := 0
	for _, card := range r.Cards {
		if card.Err != nil {
			n++
		}
	}
	return n
}

// GenerateBatch renders one card per user. A failing card records its error
// in the result instead of aborting the rest of the batch.
func (o *Orchestrator) GenerateBatch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	if ctx == nil {
		return BatchResult{}, errors.New("orchestrator: context is required")
	}
	if len(req.Users) == 0 {
		return BatchResult{}, errors.New("orchestrator: batch requires at least one user")
	}

	result, err := o.Extract(ctx, Request{
		Source:   req.Source,
		Document: req.Document,
		Name:     req.Name,
	})
	if err != nil {
		return BatchResult{}, err
	}

	doc := template.MustNewDocument(template.SourceFromMemory(result.Meta.Name), []byte(result.Meta.RawSVG))

	workers := req.Workers
	if workers < 1 {
		workers = defaultBatchWorkers
	}
	if workers > len(req.Users) {
		workers = len(req.Users)
	}

	batch := BatchResult{
		BatchID: uuid.NewString(),
		Cards:   make([]BatchCard, len(req.Users)),
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, user := range req.Users {
		if err := ctx.Err(); err != nil {
			batch.Cards[i] = BatchCard{ID: uuid.NewString(), Index: i, Err: err}
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, user model.UserData) {
			defer wg.Done()
			defer func() { <-sem }()

			card := BatchCard{ID: uuid.NewString(), Index: i}
			output, err := o.Generate(ctx, Request{
				Document:      &doc,
				Name:          result.Meta.Name,
				User:          user,
				Mappings:      req.Mappings,
				Renderer:      req.Renderer,
				RenderOptions: req.RenderOptions,
			})
			if err != nil {
				card.Err = fmt.Errorf("orchestrator: card %d: %w", i, err)
			} else {
				card.Output = output
			}
			batch.Cards[i] = card
		}(i, user)
	}
	wg.Wait()

	return batch, nil
}
