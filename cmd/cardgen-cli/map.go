package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-cardgen/pkg/mapping"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/naming"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
)

const (
	choiceSkip   = "(skip)"
	choiceCustom = "(custom static text)"
)

// runMap extracts the template fields and walks the user through assigning a
// standard field name to each one, then writes the result as a mappings file.
func runMap(args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	source := fs.String("source", "", "SVG template path or URL")
	output := fs.String("output", "mappings.yaml", "mappings file to write (.yaml or .json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := parseSource(*source)
	if src == nil {
		return fmt.Errorf("invalid source: %q", *source)
	}

	gen := newOrchestrator()
	result, err := gen.Extract(context.Background(), orchestrator.Request{Source: src})
	if err != nil {
		return err
	}
	if len(result.Fields) == 0 {
		return errors.New("no bindable fields detected in template")
	}

	choices := append([]string{choiceSkip, choiceCustom}, naming.StandardFieldNames()...)

	var mappings []model.FieldMapping
	for _, field := range result.Fields {
		layer := field.SourceID
		if layer == "" {
			layer = field.ID
		}

		var choice string
		prompt := &survey.Select{
			Message:  fmt.Sprintf("Map %q (%s)", field.Label, layer),
			Options:  choices,
			Default:  choiceSkip,
			PageSize: 12,
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return errors.New("aborted")
			}
			return fmt.Errorf("prompt: %w", err)
		}

		switch choice {
		case choiceSkip:
			continue
		case choiceCustom:
			var text string
			input := &survey.Input{Message: fmt.Sprintf("Static text for %q", field.Label)}
			if err := survey.AskOne(input, &text); err != nil {
				if errors.Is(err, terminal.InterruptErr) {
					return errors.New("aborted")
				}
				return fmt.Errorf("prompt: %w", err)
			}
			mappings = append(mappings, model.FieldMapping{
				SVGLayerID:        layer,
				StandardFieldName: naming.CustomSentinel,
				CustomValue:       text,
			})
		default:
			mappings = append(mappings, model.FieldMapping{
				SVGLayerID:        layer,
				StandardFieldName: choice,
			})
		}
	}

	if len(mappings) == 0 {
		return errors.New("no mappings selected")
	}
	if err := mapping.SaveFile(*output, mappings); err != nil {
		return err
	}
	fmt.Printf("Wrote %d mappings to %s\n", len(mappings), *output)
	return nil
}
