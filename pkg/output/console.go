package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/espressodb/gobarman/pkg/types"
	"github.com/espressodb/gobarman/pkg/utils"
)

// timestamp layouts used by the console renderings
const (
	// endTimeLayout matches ctime-style timestamps in backup listings
	endTimeLayout = time.ANSIC
	// detailTimeLayout is used by the show-backup report
	detailTimeLayout = "2006-01-02 15:04:05-07:00"
)

// ConsoleWriter is the default writer: human-readable output on the
// standard streams. It also accumulates check and status records so that
// aggregating subclasses built on top of it can consume them on Close.
type ConsoleWriter struct {
	outStream io.Writer
	errStream io.Writer
	debug     bool
	quiet     bool
	color     bool

	// minimal reduces list-style output to bare identifiers. Toggled by
	// the init call of list commands.
	minimal bool

	// Append-only result records, insertion order preserved.
	checks   []CheckResult
	statuses []StatusResult

	session *Controller
}

// NewConsoleWriter builds a console writer. Debug messages are only printed
// when opts.Debug is set; info messages are suppressed when opts.Quiet is
// set. Warnings, errors and exceptions are never suppressed.
func NewConsoleWriter(opts WriterOptions) *ConsoleWriter {
	errStream := opts.stderr()
	return &ConsoleWriter{
		outStream: opts.stdout(),
		errStream: errStream,
		debug:     opts.Debug,
		quiet:     opts.Quiet,
		color:     colorEnabled(errStream),
	}
}

// AttachSession implements SessionAware.
func (w *ConsoleWriter) AttachSession(c *Controller) {
	w.session = c
}

// Checks returns the recorded check results in insertion order.
func (w *ConsoleWriter) Checks() []CheckResult {
	return w.checks
}

// Statuses returns the recorded status results in insertion order.
func (w *ConsoleWriter) Statuses() []StatusResult {
	return w.statuses
}

func (w *ConsoleWriter) out(template string, args []any) {
	fmt.Fprintln(w.outStream, Format(template, args...))
}

func (w *ConsoleWriter) err(template string, args []any) {
	fmt.Fprintln(w.errStream, Format(template, args...))
}

// Debug prints to the error stream, only in debug mode
func (w *ConsoleWriter) Debug(template string, args ...any) {
	if w.debug {
		w.err(renderSeverity("debug", "DEBUG:", w.color)+" "+template, args)
	}
}

// Info prints to the output stream, unless quiet
func (w *ConsoleWriter) Info(template string, args ...any) {
	if !w.quiet {
		w.out(template, args)
	}
}

// Warning prints to the error stream, always
func (w *ConsoleWriter) Warning(template string, args ...any) {
	w.err(renderSeverity("warning", "WARNING:", w.color)+" "+template, args)
}

// Error prints to the error stream, always
func (w *ConsoleWriter) Error(template string, args ...any) {
	w.err(renderSeverity("error", "ERROR:", w.color)+" "+template, args)
}

// Exception prints to the error stream, always
func (w *ConsoleWriter) Exception(template string, args ...any) {
	w.err(renderSeverity("exception", "EXCEPTION:", w.color)+" "+template, args)
}

// ErrorOccurred is a hook for subtypes; the console itself does nothing.
func (w *ConsoleWriter) ErrorOccurred() {}

// Close is a no-op for the console.
func (w *ConsoleWriter) Close() {}

// ResultBackup renders the result of a backup run.
// Nothing to print for the console; the backup command reports through
// severity messages.
func (w *ConsoleWriter) ResultBackup(info *types.BackupInfo) {}

// recordCheck appends a check record and marks the session error state on
// failure.
func (w *ConsoleWriter) recordCheck(serverName, check string, status bool, hint string) {
	w.checks = append(w.checks, CheckResult{
		ServerName: serverName,
		Check:      check,
		Status:     status,
		Hint:       hint,
	})
	if !status && w.session != nil {
		w.session.MarkError()
	}
}

// InitCheck prints the server header of a check run
func (w *ConsoleWriter) InitCheck(serverName string) {
	w.Info("Server %s:", serverName)
}

// ResultCheck records a single check outcome and prints it
func (w *ConsoleWriter) ResultCheck(serverName, check string, status bool, hint string) {
	w.recordCheck(serverName, check, status, hint)
	outcome := "OK"
	if !status {
		outcome = "FAILED"
	}
	if hint != "" {
		w.Info("\t%s: %s (%s)", check, outcome, hint)
	} else {
		w.Info("\t%s: %s", check, outcome)
	}
}

// InitListBackup sets the rendering mode for the following backup lines
func (w *ConsoleWriter) InitListBackup(serverName string, minimal bool) {
	w.minimal = minimal
}

// ResultListBackup prints a single line of the list-backup command
func (w *ConsoleWriter) ResultListBackup(info *types.BackupInfo, backupSize, walSize int64, retentionStatus string) {
	if w.minimal {
		w.Info(info.BackupID)
		return
	}

	var line strings.Builder
	fmt.Fprintf(&line, "%s %s - ", info.ServerName, info.BackupID)
	if info.IsDone() {
		fmt.Fprintf(&line, "%s - Size: %s - WAL Size: %s",
			info.EndTime.Format(endTimeLayout),
			utils.PrettySize(backupSize),
			utils.PrettySize(walSize))
		if len(info.Tablespaces) > 0 {
			pairs := make([]string, 0, len(info.Tablespaces))
			for _, tablespace := range info.Tablespaces {
				pairs = append(pairs, tablespace.Name+":"+tablespace.Location)
			}
			fmt.Fprintf(&line, " (tablespaces: %s)", strings.Join(pairs, ", "))
		}
		if retentionStatus != "" {
			fmt.Fprintf(&line, " - %s", retentionStatus)
		}
	} else {
		line.WriteString(string(info.Status))
	}
	w.Info(line.String())
}

// ResultShowBackup prints the full show-backup report
func (w *ConsoleWriter) ResultShowBackup(ext *types.BackupExtInfo) {
	w.Info("Backup %s:", ext.BackupID)
	w.Info("  Server Name       : %s", ext.ServerName)
	w.Info("  Status            : %s", ext.Status)
	if !ext.IsDone() {
		if ext.Error != "" {
			w.Info("  Error:            : %s", ext.Error)
		}
		return
	}
	w.Info("  PostgreSQL Version: %s", ext.Version)
	w.Info("  PGDATA directory  : %s", ext.PGData)
	if len(ext.Tablespaces) > 0 {
		w.Info("  Tablespaces:")
		for _, tablespace := range ext.Tablespaces {
			w.Info("    %s: %s (oid: %d)",
				tablespace.Name, tablespace.Location, tablespace.OID)
		}
	}
	w.Info("")
	w.Info("  Base backup information:")
	w.Info("    Disk usage      : %s", utils.PrettySize(ext.Size+ext.WALSize))
	w.Info("    Timeline        : %d", ext.Timeline)
	w.Info("    Begin WAL       : %s", ext.BeginWAL)
	w.Info("    End WAL         : %s", ext.EndWAL)
	w.Info("    WAL number      : %d", ext.WALNum)
	w.Info("    Begin time      : %s", ext.BeginTime.Format(detailTimeLayout))
	w.Info("    End time        : %s", ext.EndTime.Format(detailTimeLayout))
	w.Info("    Begin Offset    : %d", ext.BeginOffset)
	w.Info("    End Offset      : %d", ext.EndOffset)
	w.Info("    Begin XLOG      : %s", ext.BeginXLOG)
	w.Info("    End XLOG        : %s", ext.EndXLOG)
	w.Info("")
	w.Info("  WAL information:")
	w.Info("    No of files     : %d", ext.WALUntilNextNum)
	w.Info("    Disk usage      : %s", utils.PrettySize(ext.WALUntilNextSize))
	w.Info("    Last available  : %s", ext.WALLast)
	w.Info("")
	w.Info("  Catalog information:")
	w.Info("    Retention Policy: %s", valueOr(ext.RetentionStatus, "not enforced"))
	w.Info("    Previous Backup : %s",
		neighbourBackup(ext.PreviousBackupID, "- (this is the oldest base backup)"))
	w.Info("    Next Backup     : %s",
		neighbourBackup(ext.NextBackupID, "- (this is the latest base backup)"))
}

// InitStatus prints the server header of a status run
func (w *ConsoleWriter) InitStatus(serverName string) {
	w.Info("Server %s:", serverName)
}

// ResultStatus records a status line, stringifying the message, and prints
// it.
func (w *ConsoleWriter) ResultStatus(serverName, status, description string, message any) {
	text := fmt.Sprint(message)
	w.statuses = append(w.statuses, StatusResult{
		ServerName:  serverName,
		Status:      status,
		Description: description,
		Message:     text,
	})
	w.Info("\t%s: %s", description, text)
}

// InitListServer sets the rendering mode for the following server lines
func (w *ConsoleWriter) InitListServer(serverName string, minimal bool) {
	w.minimal = minimal
}

// ResultListServer prints a single line of the list-server command
func (w *ConsoleWriter) ResultListServer(serverName, description string) {
	if w.minimal || description == "" {
		w.Info("%s", serverName)
	} else {
		w.Info("%s - %s", serverName, description)
	}
}

// InitShowServer prints the server header of a show-server report
func (w *ConsoleWriter) InitShowServer(serverName string) {
	w.Info("Server %s:", serverName)
}

// ResultShowServer prints one key/value line per field, in the given order
func (w *ConsoleWriter) ResultShowServer(serverName string, info []types.ServerInfoField) {
	for _, field := range info {
		w.Info("\t%s: %s", field.Key, field.Value)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// neighbourBackup renders the previous/next backup ID: nil means the
// catalog could not tell, empty means there is no neighbour.
func neighbourBackup(id *string, sentinel string) string {
	if id == nil {
		return "not available"
	}
	if *id == "" {
		return sentinel
	}
	return *id
}
