package model

// Report is the result of checking a single source file.
type Report struct {
	Path        Path        `yaml:"path"`
	Hash        string      `yaml:"hash"`
	Tokens      int         `yaml:"tokens"`
	Nodes       int         `yaml:"nodes"`
	Diagnostics Diagnostics `yaml:"diagnostics,omitempty"`
	Err         string      `yaml:"error,omitempty"` // fatal lexer error or I/O error
}

// Status summarizes a report.
type Status int

const (
	// Clean indicates no diagnostics at all.
	Clean Status = iota
	// Warned indicates warnings or infos but no errors.
	Warned
	// Failed indicates errors or a fatal failure.
	Failed
)

func (s Status) String() string {
	switch s {
	case Clean:
		return "ok"
	case Warned:
		return "warnings"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status returns the summary status of the report.
func (r Report) Status() Status {
	if r.Err != "" || r.Diagnostics.HasErrors() {
		return Failed
	}

	if len(r.Diagnostics) > 0 {
		return Warned
	}

	return Clean
}

// CheckSummary aggregates a set of reports.
type CheckSummary struct {
	Files    int
	Errors   int
	Warnings int
	Infos    int
	Failed   int
}

// Summarize aggregates the reports.
func Summarize(reports []Report) CheckSummary {
	var s CheckSummary

	for _, r := range reports {
		s.Files++
		s.Errors += r.Diagnostics.Count(LevelError)
		s.Warnings += r.Diagnostics.Count(LevelWarning)
		s.Infos += r.Diagnostics.Count(LevelInfo)

		if r.Status() == Failed {
			s.Failed++
		}
	}

	return s
}
