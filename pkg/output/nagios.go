package output

import (
	"fmt"
	"io"
	"os"
)

// NagiosWriter renders a check run as a monitoring plugin would expect:
// nothing during the run, one aggregate status line on Close.
//
// It reuses the ConsoleWriter record-keeping over discarded streams, so
// every check outcome is accumulated but no text reaches the terminal.
type NagiosWriter struct {
	*ConsoleWriter

	plugin io.Writer
}

// NewNagiosWriter builds a nagios writer printing its aggregate line to
// standard output.
func NewNagiosWriter() *NagiosWriter {
	return NewNagiosWriterTo(os.Stdout)
}

// NewNagiosWriterTo builds a nagios writer printing its aggregate line to w.
func NewNagiosWriterTo(w io.Writer) *NagiosWriter {
	return &NagiosWriter{
		ConsoleWriter: NewConsoleWriter(WriterOptions{
			Stdout: io.Discard,
			Stderr: io.Discard,
		}),
		plugin: w,
	}
}

// Close aggregates the recorded checks into a single status line. A server
// with at least one failed check counts as a server with issues; any issue
// escalates the error exit code to 2 (CRITICAL).
func (w *NagiosWriter) Close() {
	var servers, issues []string
	for _, check := range w.Checks() {
		if !contains(servers, check.ServerName) {
			servers = append(servers, check.ServerName)
		}
		if !check.Status && !contains(issues, check.ServerName) {
			issues = append(issues, check.ServerName)
		}
	}
	if len(issues) > 0 {
		fmt.Fprintf(w.plugin, "BARMAN CRITICAL - %d server out of %d has issues\n",
			len(issues), len(servers))
		if w.session != nil {
			w.session.SetErrorExitCode(2)
		}
		return
	}
	fmt.Fprintln(w.plugin, "BARMAN OK - Ready to serve the Espresso backup")
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
