package output

import "github.com/YoshitsuguKoike/propdoc/internal/application/dto"

// ExtractPresenter reports the outcome of an extraction run to the operator
type ExtractPresenter interface {
	// PresentResult presents per-component counts, the total and where the
	// artifact went
	PresentResult(out *dto.ExtractOutput) error

	// PresentError presents a fatal error
	PresentError(err error) error
}
