package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/YoshitsuguKoike/propdoc/internal/app"
	"github.com/YoshitsuguKoike/propdoc/internal/application/dto"
	"github.com/YoshitsuguKoike/propdoc/internal/application/port/output"
	"github.com/YoshitsuguKoike/propdoc/internal/domain/model/prop"
	"github.com/YoshitsuguKoike/propdoc/internal/infrastructure/parser"
)

// ExtractPropsUseCase turns a documentation corpus into a prop catalog
type ExtractPropsUseCase struct {
	store    output.DocumentStore
	excluded map[string]struct{}
}

// NewExtractPropsUseCase creates the use case. Sections whose title is in
// excluded are never parsed.
func NewExtractPropsUseCase(store output.DocumentStore, excluded []string) *ExtractPropsUseCase {
	set := make(map[string]struct{}, len(excluded))
	for _, title := range excluded {
		set[title] = struct{}{}
	}
	return &ExtractPropsUseCase{
		store:    store,
		excluded: set,
	}
}

// Extract runs the pipeline over one document. Later sections with the same
// title replace earlier ones in the catalog, but every retained section is
// counted in Counts and Total.
func (u *ExtractPropsUseCase) Extract(document string) *dto.ExtractResult {
	logger := app.GetLogger()
	result := &dto.ExtractResult{Catalog: prop.NewCatalog()}

	for _, section := range parser.SplitSections(document) {
		if _, skip := u.excluded[section.Title]; skip {
			logger.Debug("skipping excluded section %q", section.Title)
			continue
		}

		props := parser.ParsePropListings(section.Content)
		if len(props) == 0 {
			continue
		}

		if _, exists := result.Catalog.Get(section.Title); exists {
			logger.Warn("duplicate component %q: later section replaces earlier one", section.Title)
		}
		// props is non-empty so Set cannot fail
		_ = result.Catalog.Set(section.Title, props)

		result.Counts = append(result.Counts, dto.ComponentCount{Title: section.Title, Count: len(props)})
		result.Total += len(props)
	}

	return result
}

// Execute reads the input document, extracts the catalog and writes it as
// JSON. Nothing is written when any step fails.
func (u *ExtractPropsUseCase) Execute(ctx context.Context, input *dto.ExtractInput) (*dto.ExtractOutput, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := app.GetLogger()
	logger.Debug("run %s: reading %s", input.RunID, input.InputPath)

	document, err := u.store.ReadDocument(input.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", input.InputPath, err)
	}

	result := u.Extract(document)

	data, err := EncodeCatalog(result.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	out := &dto.ExtractOutput{
		ExtractResult: *result,
		JSON:          data,
		OutputPath:    input.OutputPath,
	}
	if input.DryRun {
		logger.Debug("run %s: dry run, %s not written", input.RunID, input.OutputPath)
		return out, nil
	}

	if err := u.store.WriteArtifact(input.OutputPath, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", input.OutputPath, err)
	}
	out.Written = true
	logger.Debug("run %s: wrote %d components to %s", input.RunID, result.Catalog.Len(), input.OutputPath)

	return out, nil
}

// EncodeCatalog renders the catalog as 4-space indented JSON in catalog order.
// Markup in descriptions is left unescaped.
func EncodeCatalog(catalog *prop.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(catalog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
