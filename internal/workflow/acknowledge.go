package workflow

import (
	"context"

	"pdfmatch/internal/duplicates"
)

// Acknowledger decides whether matching may proceed for a source whose
// inputs contain duplicate keys.
type Acknowledger interface {
	Acknowledge(ctx context.Context, report duplicates.Report) (bool, error)
}

// AcknowledgeFunc adapts a function to Acknowledger.
type AcknowledgeFunc func(ctx context.Context, report duplicates.Report) (bool, error)

// Acknowledge calls f.
func (f AcknowledgeFunc) Acknowledge(ctx context.Context, report duplicates.Report) (bool, error) {
	return f(ctx, report)
}

// AutoAcknowledge accepts every report.
var AutoAcknowledge Acknowledger = AcknowledgeFunc(func(context.Context, duplicates.Report) (bool, error) {
	return true, nil
})
