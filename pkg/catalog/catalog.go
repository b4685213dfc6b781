// Package catalog reads the on-disk backup catalog. Each server directory
// holds base backups under base/<backup_id>/ with a backup.info metadata
// file and the archived WAL segments under wals/.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/espressodb/gobarman/pkg/config"
	"github.com/espressodb/gobarman/pkg/errors"
	"github.com/espressodb/gobarman/pkg/logging"
	"github.com/espressodb/gobarman/pkg/types"
)

const (
	baseDirName  = "base"
	walsDirName  = "wals"
	metadataFile = "backup.info"
)

// Catalog provides read access to the backup catalogs of configured servers
type Catalog struct {
	logger zerolog.Logger
}

// New returns a catalog reader
func New() *Catalog {
	return &Catalog{
		logger: logging.GetLogger("catalog"),
	}
}

// ListBackups returns the backups of a server sorted by backup ID, which
// sorts oldest first given the timestamp-derived naming scheme.
func (c *Catalog) ListBackups(srv config.ServerConfig) ([]*types.BackupInfo, error) {
	baseDir := filepath.Join(srv.BackupDirectory, baseDirName)
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrCatalogAccess,
			"cannot read backup directory for server %s", srv.Name)
	}

	var backups []*types.BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := c.LoadBackup(srv, entry.Name())
		if err != nil {
			c.logger.Warn().Err(err).
				Str("server", srv.Name).
				Str("backup", entry.Name()).
				Msg("Skipping unreadable backup metadata")
			continue
		}
		backups = append(backups, info)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].BackupID < backups[j].BackupID
	})
	return backups, nil
}

// LoadBackup reads the metadata of a single backup.
func (c *Catalog) LoadBackup(srv config.ServerConfig, backupID string) (*types.BackupInfo, error) {
	path := filepath.Join(srv.BackupDirectory, baseDirName, backupID, metadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrBackupNotFound,
				"backup %s for server %s not found", backupID, srv.Name)
		}
		return nil, errors.Wrapf(err, errors.ErrCatalogAccess,
			"cannot read metadata of backup %s", backupID)
	}
	var info types.BackupInfo
	if err := gotoml.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogParse,
			"invalid metadata in %s", path)
	}
	if info.ServerName == "" {
		info.ServerName = srv.Name
	}
	if info.BackupID == "" {
		info.BackupID = backupID
	}
	return &info, nil
}

// BackupSizes returns the base backup size and the size of the WAL files
// belonging to the backup (segments between its begin and end WAL).
func (c *Catalog) BackupSizes(srv config.ServerConfig, info *types.BackupInfo) (backupSize, walSize int64) {
	backupSize = dirSize(filepath.Join(srv.BackupDirectory, baseDirName, info.BackupID))
	for _, wal := range c.walSegments(srv) {
		if info.BeginWAL != "" && wal.name >= info.BeginWAL && wal.name <= info.EndWAL {
			walSize += wal.size
		}
	}
	return backupSize, walSize
}

// ExtInfo assembles the extended view of a backup used by show-backup.
func (c *Catalog) ExtInfo(srv config.ServerConfig, info *types.BackupInfo) *types.BackupExtInfo {
	ext := &types.BackupExtInfo{BackupInfo: *info}
	ext.Size, ext.WALSize = c.BackupSizes(srv, info)

	// Neighbours first: the WAL range between this backup and the next one
	// ends where the next backup's own WAL range begins.
	nextBeginWAL := ""
	// On a list error neighbours stay nil: "not available".
	backups, err := c.ListBackups(srv)
	if err == nil {
		for i, b := range backups {
			if b.BackupID != info.BackupID {
				continue
			}
			previous, next := "", ""
			if i > 0 {
				previous = backups[i-1].BackupID
			}
			if i < len(backups)-1 {
				next = backups[i+1].BackupID
				nextBeginWAL = backups[i+1].BeginWAL
			}
			ext.PreviousBackupID = &previous
			ext.NextBackupID = &next
			ext.RetentionStatus = c.RetentionStatus(srv, backups, i)
			break
		}
	}

	for _, wal := range c.walSegments(srv) {
		switch {
		case info.BeginWAL != "" && wal.name >= info.BeginWAL && wal.name <= info.EndWAL:
			ext.WALNum++
		case info.EndWAL != "" && wal.name > info.EndWAL &&
			(nextBeginWAL == "" || wal.name < nextBeginWAL):
			ext.WALUntilNextNum++
			ext.WALUntilNextSize += wal.size
		}
		if wal.name > ext.WALLast {
			ext.WALLast = wal.name
		}
	}
	return ext
}

// RetentionStatus evaluates a REDUNDANCY retention policy for the backup at
// index idx of the sorted backup list. Without a policy it returns the
// empty string ("not enforced").
func (c *Catalog) RetentionStatus(srv config.ServerConfig, backups []*types.BackupInfo, idx int) string {
	redundancy, ok := parseRedundancy(srv.RetentionPolicy)
	if !ok {
		return ""
	}
	// Count completed backups newer than this one.
	newer := 0
	for _, b := range backups[idx+1:] {
		if b.IsDone() {
			newer++
		}
	}
	if newer >= redundancy {
		return "OBSOLETE"
	}
	return "VALID"
}

// ServerInfo builds the ordered field list shown by show-server.
func (c *Catalog) ServerInfo(srv config.ServerConfig) []types.ServerInfoField {
	backups, _ := c.ListBackups(srv)
	first, last := "None", "None"
	if len(backups) > 0 {
		first = backups[0].BackupID
		last = backups[len(backups)-1].BackupID
	}
	return []types.ServerInfoField{
		{Key: "description", Value: srv.Description},
		{Key: "backup_directory", Value: srv.BackupDirectory},
		{Key: "base_backups_directory", Value: filepath.Join(srv.BackupDirectory, baseDirName)},
		{Key: "wals_directory", Value: filepath.Join(srv.BackupDirectory, walsDirName)},
		{Key: "retention_policy", Value: valueOr(srv.RetentionPolicy, "none")},
		{Key: "backups_number", Value: strconv.Itoa(len(backups))},
		{Key: "first_backup", Value: first},
		{Key: "last_backup", Value: last},
	}
}

// StatusEntry is one line of the status command. The message stays untyped
// so structured values survive into machine-readable output modes.
type StatusEntry struct {
	Status      string
	Description string
	Message     any
}

// ServerStatus builds the status report of a server.
func (c *Catalog) ServerStatus(srv config.ServerConfig) []StatusEntry {
	backups, err := c.ListBackups(srv)
	version := "unknown"
	if len(backups) > 0 && backups[len(backups)-1].Version != "" {
		version = backups[len(backups)-1].Version
	}
	first, last := "None", "None"
	if len(backups) > 0 {
		first = backups[0].BackupID
		last = backups[len(backups)-1].BackupID
	}
	return []StatusEntry{
		{Status: "description", Description: "Description", Message: srv.Description},
		{Status: "active", Description: "Active", Message: err == nil},
		{Status: "pg_version", Description: "PostgreSQL version", Message: version},
		{Status: "backups_number", Description: "No. of available backups", Message: len(backups)},
		{Status: "first_backup", Description: "First available backup", Message: first},
		{Status: "last_backup", Description: "Last available backup", Message: last},
	}
}

// walSegment is one archived WAL file
type walSegment struct {
	name string
	size int64
}

// walSegments lists the archived WAL files of a server, sorted by name.
func (c *Catalog) walSegments(srv config.ServerConfig) []walSegment {
	walsDir := filepath.Join(srv.BackupDirectory, walsDirName)
	var segments []walSegment
	_ = filepath.WalkDir(walsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		segments = append(segments, walSegment{name: d.Name(), size: fi.Size()})
		return nil
	})
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].name < segments[j].name
	})
	return segments
}

func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total
}

// parseRedundancy extracts N from a "REDUNDANCY N" retention policy.
func parseRedundancy(policy string) (int, bool) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(policy)))
	if len(fields) != 2 || fields[0] != "REDUNDANCY" {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
