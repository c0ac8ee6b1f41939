package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pdfmatch/internal/duplicates"
	"pdfmatch/internal/workflow"
)

// promptAcknowledger asks the operator whether to continue with a source
// whose inputs contain duplicate keys. Enter continues; "skip" (or "s", "n",
// "no") declines the source.
type promptAcknowledger struct {
	in       *bufio.Reader
	out      io.Writer
	colorize bool
}

func newPromptAcknowledger(in io.Reader, out io.Writer) *promptAcknowledger {
	return &promptAcknowledger{
		in:       bufio.NewReader(in),
		out:      out,
		colorize: shouldColorize(out),
	}
}

func (p *promptAcknowledger) Acknowledge(ctx context.Context, report duplicates.Report) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, renderStatusLine("Duplicates", statusWarn, report.Source, p.colorize))
	for _, line := range report.Lines(duplicates.DisplayLimit, duplicates.DisplayWidth) {
		fmt.Fprintln(p.out, statusIndent+line)
	}
	fmt.Fprint(p.out, "Press Enter to continue or type 'skip' to skip this source: ")

	answer, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		// A closed input without an answer declines.
		if answer == "" {
			return false, nil
		}
	default:
		return false, fmt.Errorf("read acknowledgment: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "skip", "s", "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

// chooseAcknowledger picks the duplicate gate for a run: --yes accepts
// everything, a terminal gets the prompt, anything else declines.
func chooseAcknowledger(assumeYes bool, in io.Reader, out io.Writer) workflow.Acknowledger {
	if assumeYes {
		return workflow.AutoAcknowledge
	}
	file, ok := in.(*os.File)
	if !ok || !isTerminal(file) {
		return nil
	}
	return newPromptAcknowledger(in, out)
}
