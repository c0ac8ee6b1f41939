package workflow

import (
	"fmt"

	"pdfmatch/internal/logging"
	"pdfmatch/internal/preflight"
)

// runPreflightChecks validates run-wide paths. Per-source directories are
// not checked here; a missing one fails only its own source.
func (r *Runner) runPreflightChecks() error {
	cfg := *r.cfg
	cfg.Matching.Sources = nil
	results := preflight.RunAll(&cfg)

	for _, res := range results {
		if res.Passed {
			r.logger.Debug("preflight check passed",
				logging.String("check", res.Name),
				logging.String("detail", res.Detail),
				logging.String(logging.FieldEventType, "preflight_passed"),
			)
			continue
		}
		r.logger.Error("preflight check failed",
			logging.String("check", res.Name),
			logging.String("detail", res.Detail),
			logging.String(logging.FieldEventType, "preflight_failed"),
			logging.String(logging.FieldErrorHint, "fix the reported path and rerun"),
		)
	}
	if len(preflight.Failures(results)) > 0 {
		return fmt.Errorf("%w: %s", ErrPreflight, preflight.Summary(results))
	}
	return nil
}
