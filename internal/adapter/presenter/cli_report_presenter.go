package presenter

import (
	"fmt"
	"io"

	"github.com/YoshitsuguKoike/propdoc/internal/application/dto"
	"github.com/YoshitsuguKoike/propdoc/internal/application/port/output"
)

// CLIReportPresenter implements output.ExtractPresenter for console output.
// One line per retained component, then the total.
type CLIReportPresenter struct {
	output    io.Writer
	errOutput io.Writer
}

// NewCLIReportPresenter creates a new CLI report presenter
func NewCLIReportPresenter(output, errOutput io.Writer) output.ExtractPresenter {
	return &CLIReportPresenter{output: output, errOutput: errOutput}
}

// PresentResult prints "<Title>: <count>" lines and "Total Props: <sum>"
func (p *CLIReportPresenter) PresentResult(out *dto.ExtractOutput) error {
	for _, c := range out.Counts {
		if _, err := fmt.Fprintf(p.output, "%s: %d\n", c.Title, c.Count); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(p.output, "Total Props: %d\n", out.Total); err != nil {
		return err
	}
	if out.Written {
		if _, err := fmt.Fprintf(p.output, "Props JSON generated and saved to %s.\n", out.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

// PresentError prints the single diagnostic line for a failed run
func (p *CLIReportPresenter) PresentError(err error) error {
	fmt.Fprintf(p.errOutput, "An error occurred: %v\n", err)
	return err
}
