package batch

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// Status is the outcome of one file.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "완료"
	case StatusSkipped:
		return "건너뜀"
	case StatusFailed:
		return "실패"
	default:
		return "알 수 없음"
	}
}

// Result is the outcome of one input file.
type Result struct {
	Input  string
	Output string
	Status Status
	Err    error
}

// Summary collects the results of a batch in input order.
type Summary struct {
	Results   []Result
	Converted int
	Skipped   int
	Failed    int
}

func newSummary(results []Result) *Summary {
	s := &Summary{Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusConverted:
			s.Converted++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Success returns the number of converted files.
func (s *Summary) Success() int {
	return s.Converted
}

// Total returns the number of input files, skipped ones included.
func (s *Summary) Total() int {
	return len(s.Results)
}

// HasFailures reports whether any file failed.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// WriteReport prints one line per file followed by the success and failure
// counts. File names wider than width display columns are truncated; a
// width of zero or less disables truncation.
func WriteReport(w io.Writer, s *Summary, width int) {
	nameWidth, statusWidth := 0, 0
	for _, r := range s.Results {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Input))
		statusWidth = max(statusWidth, runewidth.StringWidth(r.Status.String()))
	}
	if width > 0 && nameWidth > width {
		nameWidth = width
	}

	for _, r := range s.Results {
		name := r.Input
		if runewidth.StringWidth(name) > nameWidth {
			name = runewidth.Truncate(name, nameWidth, "…")
		}

		detail := r.Output
		if r.Err != nil {
			detail = r.Err.Error()
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			runewidth.FillRight(r.Status.String(), statusWidth),
			runewidth.FillRight(name, nameWidth),
			detail)
	}

	if len(s.Results) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "성공: %d/%d\n", s.Success(), s.Total())
	fmt.Fprintf(w, "실패: %d/%d\n", s.Failed, s.Total())
}
