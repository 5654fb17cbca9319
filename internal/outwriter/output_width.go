package outwriter

import (
	"os"

	"github.com/qixiboss/gaitscore/internal/contract"
	"golang.org/x/term"
)

// getMaxSourceWidth calculates the maximum width for the joint log path in the
// report header based on terminal width.
func getMaxSourceWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the "Gait report: " prefix
	available := termWidth - 16
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}
