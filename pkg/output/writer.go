package output

import (
	"io"
	"os"

	"github.com/espressodb/gobarman/pkg/registry"
	"github.com/espressodb/gobarman/pkg/types"
)

// Writer is the contract every output mode implements: the five severity
// emits, the error notification hook and the close hook. Per-command
// rendering lives in the optional capability interfaces below.
type Writer interface {
	Debug(template string, args ...any)
	Info(template string, args ...any)
	Warning(template string, args ...any)
	Error(template string, args ...any)
	Exception(template string, args ...any)

	// ErrorOccurred is invoked by the controller before the rendering
	// method whenever a message is emitted with the error flag set.
	ErrorOccurred()

	// Close finalizes the writer. Aggregating writers emit their summary
	// here. It runs exactly once per writer, either when the writer is
	// replaced or when the run terminates.
	Close()
}

// SessionAware writers receive the controller that installs them, which
// gives record-keeping code access to the shared error state and exit code.
type SessionAware interface {
	AttachSession(c *Controller)
}

// CheckWriter renders the check command.
type CheckWriter interface {
	InitCheck(serverName string)
	ResultCheck(serverName, check string, status bool, hint string)
}

// BackupReporter renders the result of a base backup run.
type BackupReporter interface {
	ResultBackup(info *types.BackupInfo)
}

// BackupListWriter renders the list-backup command.
type BackupListWriter interface {
	InitListBackup(serverName string, minimal bool)
	ResultListBackup(info *types.BackupInfo, backupSize, walSize int64, retentionStatus string)
}

// BackupShowWriter renders the show-backup command.
type BackupShowWriter interface {
	ResultShowBackup(info *types.BackupExtInfo)
}

// StatusWriter renders the status command. The message is deliberately
// untyped: console output stringifies it, machine-readable writers may
// preserve its structure.
type StatusWriter interface {
	InitStatus(serverName string)
	ResultStatus(serverName, status, description string, message any)
}

// ServerListWriter renders the list-server command.
type ServerListWriter interface {
	InitListServer(serverName string, minimal bool)
	ResultListServer(serverName, description string)
}

// ServerShowWriter renders the show-server command.
type ServerShowWriter interface {
	InitShowServer(serverName string)
	ResultShowServer(serverName string, info []types.ServerInfoField)
}

// CheckResult is a single recorded check outcome. Records are append-only
// and owned by the writer instance that recorded them.
type CheckResult struct {
	ServerName string `json:"server_name"`
	Check      string `json:"check"`
	Status     bool   `json:"status"`
	Hint       string `json:"hint,omitempty"`
}

// StatusResult is a single recorded status line, with the message already
// stringified.
type StatusResult struct {
	ServerName  string `json:"server_name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// WriterOptions configures writers created through the registry.
// Nil streams default to the process standard streams.
type WriterOptions struct {
	Debug  bool
	Quiet  bool
	Stdout io.Writer
	Stderr io.Writer
}

func (o WriterOptions) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o WriterOptions) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// WriterFactory builds a writer from options.
type WriterFactory func(opts WriterOptions) Writer

// DefaultWriterName is the registry entry installed at startup.
const DefaultWriterName = "console"

// writers maps symbolic names to writer factories. The nagios writer is
// intentionally absent: it is a special-purpose integration, not a general
// output mode, and must be installed as an instance.
var writers = registry.New[WriterFactory]()

func init() {
	registry.MustRegister(writers, "console", func(opts WriterOptions) Writer {
		return NewConsoleWriter(opts)
	})
	registry.MustRegister(writers, "json", func(opts WriterOptions) Writer {
		return NewJSONWriter(opts)
	})
}

// RegisterWriter adds a writer factory under the given name.
func RegisterWriter(name string, factory WriterFactory) error {
	return writers.Register(name, factory)
}

// AvailableWriters returns the registered writer names in sorted order.
func AvailableWriters() []string {
	return writers.List()
}
