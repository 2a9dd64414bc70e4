package entities

// Status is the result of processing one localization file.
type Status int

const (
	StatusUpdated Status = iota
	StatusMissingFile
	StatusMissingKey
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusMissingFile:
		return "missing-file"
	case StatusMissingKey:
		return "missing-key"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Outcome records what happened to a single file of a translation table.
type Outcome struct {
	File     string
	Status   Status
	OldValue string
	NewValue string
	Err      error
}

// Report aggregates the outcomes of one updater run, in table order.
type Report struct {
	Key      string
	DryRun   bool
	Outcomes []Outcome

	Updated     int
	MissingFile int
	MissingKey  int
	Errors      int
}

// Add appends o and bumps the matching counter.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusUpdated:
		r.Updated++
	case StatusMissingFile:
		r.MissingFile++
	case StatusMissingKey:
		r.MissingKey++
	case StatusError:
		r.Errors++
	}
}

// Total is the number of table entries processed so far.
func (r *Report) Total() int {
	return len(r.Outcomes)
}
