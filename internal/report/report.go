// Package report renders a finished pipeline run as a PDF calculation
// sheet or an XLSX bill of quantities, and reads XLSX scenario sheets
// for batch runs.
package report

import (
	"time"

	"github.com/alexiusacademia/gorcframe/internal/pipeline"
)

// Document is one run to be reported.
type Document struct {
	Project string
	Author  string
	Date    time.Time

	Input  pipeline.Input
	Result *pipeline.Result
}

func (d Document) title() string {
	if d.Project == "" {
		return "Untitled project"
	}
	return d.Project
}

func (d Document) date() string {
	if d.Date.IsZero() {
		return time.Now().Format("2006-01-02")
	}
	return d.Date.Format("2006-01-02")
}
