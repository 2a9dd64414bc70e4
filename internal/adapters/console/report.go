package console

import (
	"fmt"
	"io"

	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/output"
)

// Printer renders reports as translated, human-readable lines.
type Printer struct {
	w io.Writer
	t output.T
}

func NewPrinter(w io.Writer, t output.T) *Printer {
	return &Printer{w: w, t: t}
}

func (p *Printer) line(key string, data map[string]any) {
	fmt.Fprintln(p.w, p.t.T("", key, data))
}

// Header announces an updater run.
func (p *Printer) Header(key string, dryRun bool) {
	if dryRun {
		p.line("report_header_dry_run", map[string]any{"Key": key})
	} else {
		p.line("report_header", map[string]any{"Key": key})
	}
	fmt.Fprintln(p.w)
}

// Report prints one line per outcome followed by the summary block.
func (p *Printer) Report(r *entities.Report, verbose bool) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case entities.StatusUpdated:
			if verbose {
				p.line("report_ok_changed", map[string]any{"File": o.File, "Old": o.OldValue, "New": o.NewValue})
			} else {
				p.line("report_ok", map[string]any{"File": o.File})
			}
		case entities.StatusMissingFile:
			p.line("report_missing_file", map[string]any{"File": o.File})
		case entities.StatusMissingKey:
			p.line("report_missing_key", map[string]any{"File": o.File, "Key": r.Key})
		case entities.StatusError:
			p.line("report_error", map[string]any{"File": o.File, "Error": o.Err})
		}
	}

	fmt.Fprintln(p.w)
	p.line("report_summary", nil)
	if r.DryRun {
		p.line("report_would_update", map[string]any{"Count": r.Updated})
	} else {
		p.line("report_updated", map[string]any{"Count": r.Updated})
	}
	p.line("report_not_found", map[string]any{"Count": r.MissingFile})
	p.line("report_key_missing", map[string]any{"Count": r.MissingKey})
	p.line("report_errors", map[string]any{"Count": r.Errors})
	if !r.DryRun && r.Updated > 0 {
		fmt.Fprintln(p.w)
		p.line("report_done", nil)
	}
}

// Submission prints the per-patch results of submit-sql. dashboardURL may be
// empty when the project's SQL editor cannot be derived.
func (p *Printer) Submission(results []entities.SubmitResult, dashboardURL string) {
	archived := false
	for _, r := range results {
		if r.Applied {
			p.line("sql_applied", map[string]any{"Name": r.Patch.Name, "Endpoint": r.AppliedBy})
			continue
		}
		p.line("sql_failed", map[string]any{"Name": r.Patch.Name})
		for _, a := range r.Attempts {
			p.line("sql_attempt", map[string]any{"Endpoint": endpointLabel(a.Endpoint), "Error": a.Err})
		}
		switch {
		case r.FallbackPath != "":
			archived = true
			p.line("sql_saved", map[string]any{"Path": r.FallbackPath})
		case r.FallbackErr != nil:
			p.line("sql_save_failed", map[string]any{"Error": r.FallbackErr})
		}
	}
	if !archived {
		return
	}
	fmt.Fprintln(p.w)
	if dashboardURL != "" {
		p.line("sql_manual", map[string]any{"URL": dashboardURL})
	} else {
		p.line("sql_manual_no_url", nil)
	}
	p.line("sql_apply_hint", nil)
}

func endpointLabel(e string) string {
	if e == "" {
		return "-"
	}
	return e
}
