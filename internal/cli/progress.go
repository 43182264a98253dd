package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Progress shows a spinner on a terminal while a slow operation runs. It is
// a no-op when disabled or when the output is not a terminal.
type Progress struct {
	s *spinner.Spinner
}

// StartProgress starts a spinner with the given message on w.
func StartProgress(w io.Writer, message string, quiet bool) *Progress {
	if quiet || !isTerminal(w) {
		return &Progress{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return &Progress{s: s}
}

// Stop stops the spinner and prints a failure line when err is set.
func (p *Progress) Stop(err error) {
	if p == nil || p.s == nil {
		return
	}
	if err != nil {
		p.s.FinalMSG = text.FgRed.Sprint("✗ ") + p.s.Suffix[1:] + "\n"
	}
	p.s.Stop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
