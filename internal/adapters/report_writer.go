package adapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/natefinch/atomic"

	"getatoms/internal/ports"
)

// ReportWriter streams result lines to Out and diagnostics to Err. When
// TestFile is set, result lines are also collected and written to that
// file atomically on Close.
type ReportWriter struct {
	Out      io.Writer
	Err      io.Writer
	TestFile string

	buffer strings.Builder
	closed bool
}

func NewReportWriter(out io.Writer, errOut io.Writer, testFile string) *ReportWriter {
	return &ReportWriter{
		Out:      out,
		Err:      errOut,
		TestFile: strings.TrimSpace(testFile),
	}
}

func (w *ReportWriter) Result(line string) error {
	if _, err := fmt.Fprintln(w.Out, line); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write result").
			WithCause(err)
	}
	if w.TestFile != "" {
		w.buffer.WriteString(line)
		w.buffer.WriteByte('\n')
	}
	return nil
}

func (w *ReportWriter) Diagnostic(line string) error {
	if _, err := fmt.Fprintln(w.Err, line); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write diagnostic").
			WithCause(err)
	}
	return nil
}

// Discard drops the result lines collected for the test file, so a
// failed run leaves it empty.
func (w *ReportWriter) Discard() {
	w.buffer.Reset()
}

// Close writes the test file. It is safe to call more than once.
func (w *ReportWriter) Close() error {
	if w.closed || w.TestFile == "" {
		return nil
	}
	w.closed = true
	if err := atomic.WriteFile(w.TestFile, strings.NewReader(w.buffer.String())); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write test file").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportPort = (*ReportWriter)(nil)
