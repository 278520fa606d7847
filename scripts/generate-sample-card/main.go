package main

import (
	"context"
	"fmt"
	"os"

	cardgen "github.com/goliatone/go-cardgen"
	"github.com/goliatone/go-cardgen/pkg/template"
)

func main() {
	ctx := context.Background()

	const (
		templatePath = "examples/fixtures/id-card.svg"
		outputPath   = "examples/fixtures/sample-card.svg"
	)

	user := cardgen.UserData{
		FirstName: "Maria",
		LastName:  "Nguyen",
		StudentID: "S-204311",
		Grade:     "11",
	}
	mappings := []cardgen.FieldMapping{
		{SVGLayerID: "{{field:fullName_First_Last}}", StandardFieldName: "fullName_First_Last"},
		{SVGLayerID: "{{field:studentId}}", StandardFieldName: "studentId"},
		{SVGLayerID: "{{field:grade}}", StandardFieldName: "grade"},
		{SVGLayerID: "{{barcode:studentId}}", StandardFieldName: "studentId"},
	}

	source := template.SourceFromFile(templatePath)
	svg, err := cardgen.GenerateCard(ctx, source, user, mappings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate card: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, svg, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated sample card SVG (%d bytes) → %s\n", len(svg), outputPath)
}
