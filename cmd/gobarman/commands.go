package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/espressodb/gobarman/internal/version"
	"github.com/espressodb/gobarman/pkg/config"
	"github.com/espressodb/gobarman/pkg/output"
	"github.com/espressodb/gobarman/pkg/types"
)

// selectedServers resolves positional server arguments against the
// configuration. No arguments, or the literal "all", selects every
// configured server. Unknown names are reported and skipped.
func selectedServers(args []string) []config.ServerConfig {
	if len(args) == 0 || (len(args) == 1 && args[0] == "all") {
		return cfg.Servers
	}
	var servers []config.ServerConfig
	for _, name := range args {
		srv, err := cfg.Server(name)
		if err != nil {
			output.Error("Unknown server '%s'", name)
			continue
		}
		servers = append(servers, srv)
	}
	return servers
}

var checkCmd = &cobra.Command{
	Use:   "check [server...]",
	Short: MsgCheckShort,
	Long:  MsgCheckLong,
	Run: func(cmd *cobra.Command, args []string) {
		for _, srv := range selectedServers(args) {
			output.Init("check", srv.Name)
			for _, chk := range cat.CheckServer(srv) {
				output.Result("check", srv.Name, chk.Name, chk.Status, chk.Hint)
			}
		}
	},
}

var listServerCmd = &cobra.Command{
	Use:   "list-server",
	Short: MsgListServerShort,
	Run: func(cmd *cobra.Command, args []string) {
		for _, srv := range cfg.Servers {
			output.Init("list-server", srv.Name, minimal)
			output.Result("list-server", srv.Name, srv.Description)
		}
	},
}

var showServerCmd = &cobra.Command{
	Use:   "show-server [server...]",
	Short: MsgShowServerShort,
	Run: func(cmd *cobra.Command, args []string) {
		for _, srv := range selectedServers(args) {
			output.Init("show-server", srv.Name)
			output.Result("show-server", srv.Name, cat.ServerInfo(srv))
		}
	},
}

var listBackupCmd = &cobra.Command{
	Use:   "list-backup [server...]",
	Short: MsgListBackupShort,
	Run: func(cmd *cobra.Command, args []string) {
		for _, srv := range selectedServers(args) {
			output.Init("list-backup", srv.Name, minimal)
			backups, err := cat.ListBackups(srv)
			if err != nil {
				output.Error("Cannot read the backup catalog of %s: %v", srv.Name, err)
				continue
			}
			// Newest first.
			for i := len(backups) - 1; i >= 0; i-- {
				info := backups[i]
				backupSize, walSize := cat.BackupSizes(srv, info)
				retention := cat.RetentionStatus(srv, backups, i)
				output.Result("list-backup", info, backupSize, walSize, retention)
			}
		}
	},
}

var showBackupCmd = &cobra.Command{
	Use:   "show-backup <server> <backup_id>",
	Short: MsgShowBackupShort,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		srv, err := cfg.Server(args[0])
		if err != nil {
			output.Error("Unknown server '%s'", args[0])
			return
		}
		info, err := cat.LoadBackup(srv, args[1])
		if err != nil {
			output.Error("Unknown backup '%s' for server '%s'", args[1], args[0])
			return
		}
		output.Result("show-backup", cat.ExtInfo(srv, info))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [server...]",
	Short: MsgStatusShort,
	Run: func(cmd *cobra.Command, args []string) {
		for _, srv := range selectedServers(args) {
			output.Init("status", srv.Name)
			for _, entry := range cat.ServerStatus(srv) {
				output.Result("status", srv.Name, entry.Status, entry.Description, entry.Message)
			}
		}
	},
}

// diagnoseReport is the document emitted by the diagnose command
type diagnoseReport struct {
	Version string                        `json:"version"`
	Config  *config.Config                `json:"config"`
	Backups map[string][]*types.BackupInfo `json:"backups"`
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: MsgDiagnoseShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := diagnoseReport{
			Version: version.Version,
			Config:  cfg,
			Backups: make(map[string][]*types.BackupInfo),
		}
		for _, srv := range cfg.Servers {
			backups, err := cat.ListBackups(srv)
			if err != nil {
				output.Error("Cannot read the backup catalog of %s: %v", srv.Name, err)
				continue
			}
			report.Backups[srv.Name] = backups
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("cannot encode diagnose report: %w", err)
		}
		return nil
	},
}
