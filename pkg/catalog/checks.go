package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/espressodb/gobarman/pkg/config"
)

// Check is the outcome of one server health check
type Check struct {
	Name   string
	Status bool
	Hint   string
}

// CheckServer runs the local health checks of a server: catalog directory
// layout, metadata integrity and the minimum redundancy requirement.
func (c *Catalog) CheckServer(srv config.ServerConfig) []Check {
	var checks []Check

	checks = append(checks, checkDirectory("backup directory", srv.BackupDirectory))
	checks = append(checks, checkDirectory("base backups directory",
		filepath.Join(srv.BackupDirectory, baseDirName)))
	checks = append(checks, checkDirectory("wals directory",
		filepath.Join(srv.BackupDirectory, walsDirName)))

	checks = append(checks, c.checkMetadata(srv))
	checks = append(checks, c.checkRedundancy(srv))

	return checks
}

func checkDirectory(name, path string) Check {
	fi, err := os.Stat(path)
	if err != nil {
		return Check{Name: name, Status: false, Hint: path + " does not exist"}
	}
	if !fi.IsDir() {
		return Check{Name: name, Status: false, Hint: path + " is not a directory"}
	}
	return Check{Name: name, Status: true}
}

// checkMetadata verifies that every backup directory carries parseable
// metadata.
func (c *Catalog) checkMetadata(srv config.ServerConfig) Check {
	baseDir := filepath.Join(srv.BackupDirectory, baseDirName)
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return Check{Name: "backup metadata", Status: false, Hint: "catalog is unreadable"}
	}
	broken := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := c.LoadBackup(srv, entry.Name()); err != nil {
			broken++
		}
	}
	if broken > 0 {
		return Check{
			Name:   "backup metadata",
			Status: false,
			Hint:   fmt.Sprintf("%d backup(s) with unreadable metadata", broken),
		}
	}
	return Check{Name: "backup metadata", Status: true}
}

// checkRedundancy verifies the minimum_redundancy requirement against the
// number of completed backups.
func (c *Catalog) checkRedundancy(srv config.ServerConfig) Check {
	backups, err := c.ListBackups(srv)
	if err != nil {
		return Check{Name: "minimum redundancy requirements", Status: false,
			Hint: "catalog is unreadable"}
	}
	done := 0
	for _, b := range backups {
		if b.IsDone() {
			done++
		}
	}
	if done < srv.MinimumRedundancy {
		return Check{
			Name:   "minimum redundancy requirements",
			Status: false,
			Hint: fmt.Sprintf("have %d backups, expected at least %d",
				done, srv.MinimumRedundancy),
		}
	}
	return Check{
		Name:   "minimum redundancy requirements",
		Status: true,
		Hint: fmt.Sprintf("have %d backups, expected at least %d",
			done, srv.MinimumRedundancy),
	}
}
