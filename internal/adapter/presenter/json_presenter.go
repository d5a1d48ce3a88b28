package presenter

import (
	"encoding/json"
	"io"

	"github.com/YoshitsuguKoike/propdoc/internal/application/dto"
	"github.com/YoshitsuguKoike/propdoc/internal/application/port/output"
)

// JSONPresenter implements output.ExtractPresenter by writing the encoded
// catalog itself, for piping a dry run into other tools
type JSONPresenter struct {
	output io.Writer
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter(output io.Writer) output.ExtractPresenter {
	return &JSONPresenter{output: output}
}

// PresentResult writes the catalog JSON
func (p *JSONPresenter) PresentResult(out *dto.ExtractOutput) error {
	_, err := p.output.Write(out.JSON)
	return err
}

// PresentError presents an error as JSON
func (p *JSONPresenter) PresentError(err error) error {
	result := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}
	return json.NewEncoder(p.output).Encode(result)
}
