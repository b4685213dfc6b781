package output

import (
	"encoding/json"
	"io"

	"github.com/espressodb/gobarman/pkg/types"
)

// jsonBackupEntry is one line of the list-backup command in JSON form
type jsonBackupEntry struct {
	*types.BackupInfo
	BackupSize      int64  `json:"backup_size"`
	WALSize         int64  `json:"wal_size"`
	RetentionStatus string `json:"retention_status,omitempty"`
}

// jsonServerEntry is one line of the list-server command in JSON form
type jsonServerEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// jsonStatusEntry mirrors StatusResult but keeps the message structured
// instead of stringifying it.
type jsonStatusEntry struct {
	ServerName  string `json:"server_name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Message     any    `json:"message"`
}

// jsonDocument is the aggregate emitted by the JSON writer on Close
type jsonDocument struct {
	Checks        []CheckResult                        `json:"checks,omitempty"`
	Status        []jsonStatusEntry                    `json:"status,omitempty"`
	Servers       []jsonServerEntry                    `json:"servers,omitempty"`
	Backups       []jsonBackupEntry                    `json:"backups,omitempty"`
	BackupDetails []*types.BackupExtInfo               `json:"backup_details,omitempty"`
	ServerDetails map[string][]types.ServerInfoField   `json:"server_details,omitempty"`
}

// JSONWriter accumulates command results and emits one machine-readable
// document on Close. Severity messages still reach the error stream through
// the embedded console writer; informational prints are discarded.
//
// Unlike the console, status messages are preserved in structured form.
type JSONWriter struct {
	*ConsoleWriter

	encoder *json.Encoder
	doc     jsonDocument
}

// NewJSONWriter builds a JSON writer emitting its document to opts.Stdout.
func NewJSONWriter(opts WriterOptions) *JSONWriter {
	encoder := json.NewEncoder(opts.stdout())
	encoder.SetIndent("", "  ")
	return &JSONWriter{
		ConsoleWriter: NewConsoleWriter(WriterOptions{
			Debug:  opts.Debug,
			Stdout: io.Discard,
			Stderr: opts.stderr(),
		}),
		encoder: encoder,
	}
}

// ResultCheck records the outcome both for aggregation and in the document
func (w *JSONWriter) ResultCheck(serverName, check string, status bool, hint string) {
	w.ConsoleWriter.ResultCheck(serverName, check, status, hint)
	w.doc.Checks = append(w.doc.Checks, CheckResult{
		ServerName: serverName,
		Check:      check,
		Status:     status,
		Hint:       hint,
	})
}

// ResultStatus keeps the raw message value for the document
func (w *JSONWriter) ResultStatus(serverName, status, description string, message any) {
	w.ConsoleWriter.ResultStatus(serverName, status, description, message)
	w.doc.Status = append(w.doc.Status, jsonStatusEntry{
		ServerName:  serverName,
		Status:      status,
		Description: description,
		Message:     message,
	})
}

// ResultListBackup collects a backup listing entry
func (w *JSONWriter) ResultListBackup(info *types.BackupInfo, backupSize, walSize int64, retentionStatus string) {
	w.doc.Backups = append(w.doc.Backups, jsonBackupEntry{
		BackupInfo:      info,
		BackupSize:      backupSize,
		WALSize:         walSize,
		RetentionStatus: retentionStatus,
	})
}

// ResultShowBackup collects the full backup detail
func (w *JSONWriter) ResultShowBackup(ext *types.BackupExtInfo) {
	w.doc.BackupDetails = append(w.doc.BackupDetails, ext)
}

// ResultListServer collects a server listing entry
func (w *JSONWriter) ResultListServer(serverName, description string) {
	w.doc.Servers = append(w.doc.Servers, jsonServerEntry{
		Name:        serverName,
		Description: description,
	})
}

// ResultShowServer collects the server detail fields
func (w *JSONWriter) ResultShowServer(serverName string, info []types.ServerInfoField) {
	if w.doc.ServerDetails == nil {
		w.doc.ServerDetails = make(map[string][]types.ServerInfoField)
	}
	w.doc.ServerDetails[serverName] = info
}

// Close emits the accumulated document
func (w *JSONWriter) Close() {
	// Encoding failures surface on the next write error; there is nowhere
	// sensible to report them from a closing writer.
	_ = w.encoder.Encode(w.doc)
}
