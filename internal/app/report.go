package app

import (
	"fmt"

	"github.com/specialistvlad/trane-courses/internal/builder"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// Report statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Report is the end-of-run summary of a build.
type Report struct {
	Status     string              `json:"status"`
	Out        string              `json:"out,omitempty"`
	Counts     *builder.Counts     `json:"counts,omitempty"`
	Violations []builder.Violation `json:"violations"`
	Warnings   []builder.Violation `json:"warnings"`
}

func successReport(res *builder.Result, out string) *Report {
	counts := res.Library.Counts
	return &Report{
		Status:     StatusOK,
		Out:        out,
		Counts:     &counts,
		Violations: []builder.Violation{},
		Warnings:   nonNilViolations(res.Warnings),
	}
}

func failedReport(violations []builder.Violation) *Report {
	return &Report{
		Status:     StatusFailed,
		Violations: nonNilViolations(violations),
		Warnings:   []builder.Violation{},
	}
}

func nonNilViolations(vs []builder.Violation) []builder.Violation {
	if vs == nil {
		return []builder.Violation{}
	}
	return vs
}

// report writes r to the output in the configured format. In text mode a
// failed build prints nothing here; the returned error carries the list.
func (a *App) report(r *Report) error {
	if a.config.ReportFormat == "json" {
		data, err := schema.EncodeJSON(r)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = a.outW.Write(data)
		return err
	}

	if r.Status != StatusOK {
		return nil
	}
	for _, w := range r.Warnings {
		if _, err := fmt.Fprintf(a.outW, "warning: %s\n", w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(a.outW, "Built course library: %d courses, %d lessons, %d exercises -> %s\n",
		r.Counts.Courses, r.Counts.Lessons, r.Counts.Exercises, r.Out)
	return err
}
