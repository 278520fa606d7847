package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/mapping"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	pkgtemplate "github.com/goliatone/go-cardgen/pkg/template"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "map":
		err = runMap(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("cardgen: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cardgen-cli <command> [flags]

Commands:
  extract   detect bindable fields in an SVG template
  map       interactively map template fields to standard field names
  render    render one card from a template, mappings, and user data
  batch     render one card per user from a JSON array of users
`)
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	source := fs.String("source", "", "SVG template path or URL")
	output := fs.String("output", "", "output file (stdout if empty)")
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

	// RawSVG inflates the listing; callers wanting the normalised template
	// should use render instead.
	result.Meta.RawSVG = ""
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return writeOutput(*output, append(payload, '\n'))
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	source := fs.String("source", "", "SVG template path or URL")
	userPath := fs.String("user", "", "JSON file with the user record")
	mappingPath := fs.String("mappings", "", "YAML or JSON mappings file (optional)")
	renderer := fs.String("renderer", "", "renderer name (default svg)")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := parseSource(*source)
	if src == nil {
		return fmt.Errorf("invalid source: %q", *source)
	}
	user, err := loadUser(*userPath)
	if err != nil {
		return err
	}
	mappings, err := loadMappings(*mappingPath)
	if err != nil {
		return err
	}

	gen := newOrchestrator()
	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:   src,
		User:     user,
		Mappings: mappings,
		Renderer: *renderer,
	})
	if err != nil {
		return err
	}
	return writeOutput(*output, out)
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	source := fs.String("source", "", "SVG template path or URL")
	usersPath := fs.String("users", "", "JSON file with an array of user records")
	mappingPath := fs.String("mappings", "", "YAML or JSON mappings file (optional)")
	renderer := fs.String("renderer", "", "renderer name (default svg)")
	outDir := fs.String("out", "cards", "output directory")
	workers := fs.Int("workers", 0, "render concurrency (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := parseSource(*source)
	if src == nil {
		return fmt.Errorf("invalid source: %q", *source)
	}
	users, err := loadUsers(*usersPath)
	if err != nil {
		return err
	}
	mappings, err := loadMappings(*mappingPath)
	if err != nil {
		return err
	}

	gen := newOrchestrator()
	result, err := gen.GenerateBatch(context.Background(), orchestrator.BatchRequest{
		Source:   src,
		Users:    users,
		Mappings: mappings,
		Renderer: *renderer,
		Workers:  *workers,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, card := range result.Cards {
		if card.Err != nil {
			fmt.Fprintf(os.Stderr, "card %d: %v\n", card.Index, card.Err)
			continue
		}
		path := fmt.Sprintf("%s/card-%03d-%s.svg", *outDir, card.Index, card.ID)
		if err := os.WriteFile(path, card.Output, 0o644); err != nil {
			return fmt.Errorf("write card %d: %w", card.Index, err)
		}
	}
	fmt.Printf("Batch %s: %d cards, %d failed\n", result.BatchID, len(result.Cards), result.Failed())
	return nil
}

// newOrchestrator builds the pipeline the subcommands share. URL sources are
// advertised in every -source flag, so the loader gets HTTP enabled here
// rather than keeping the library default of file and fs only.
func newOrchestrator() *orchestrator.Orchestrator {
	opts := pkgtemplate.NewLoaderOptions()
	opts.AllowHTTPFallback = true
	return orchestrator.New(orchestrator.WithLoader(loader.New(opts)))
}

func parseSource(raw string) pkgtemplate.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgtemplate.SourceFromURL(path)
	}
	return pkgtemplate.SourceFromFile(path)
}

func loadUser(path string) (model.UserData, error) {
	if path == "" {
		return model.UserData{}, fmt.Errorf("a -user file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.UserData{}, fmt.Errorf("read user file: %w", err)
	}
	var user model.UserData
	if err := json.Unmarshal(data, &user); err != nil {
		return model.UserData{}, fmt.Errorf("decode user file: %w", err)
	}
	return user, nil
}

func loadUsers(path string) ([]model.UserData, error) {
	if path == "" {
		return nil, fmt.Errorf("a -users file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var users []model.UserData
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users file: %w", err)
	}
	return users, nil
}

func loadMappings(path string) ([]model.FieldMapping, error) {
	if path == "" {
		return nil, nil
	}
	return mapping.LoadFile(path)
}

func writeOutput(path string, payload []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Written to %s\n", path)
	return nil
}
