package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/espressodb/gobarman/internal/version"
	"github.com/espressodb/gobarman/pkg/catalog"
	"github.com/espressodb/gobarman/pkg/config"
	"github.com/espressodb/gobarman/pkg/logging"
	"github.com/espressodb/gobarman/pkg/output"
)

var (
	verbosity   int
	cfgPath     string
	quiet       bool
	debugOutput bool
	nagios      bool
	format      string
	minimal     bool

	cfg *config.Config
	cat *catalog.Catalog

	rootCmd = &cobra.Command{
		Use:   "gobarman",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)

			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			cat = catalog.New()
			return setupOutput()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// setupOutput installs the writer selected by flags and configuration on
// the process-wide output controller.
func setupOutput() error {
	output.Default().SetLogger(logging.GetLogger("cli"))

	// The nagios writer is not in the registry; it is installed as an
	// instance, only ever on explicit request.
	if nagios {
		output.SetWriter(output.NewNagiosWriter())
		return nil
	}

	name := format
	if name == "" {
		name = cfg.Output.Writer
	}
	return output.SetWriterByName(name, output.WriterOptions{
		Debug: debugOutput || cfg.Output.Debug,
		Quiet: quiet || cfg.Output.Quiet,
	})
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().BoolVarP(&debugOutput, "debug", "d", false, MsgFlagDebug)
	rootCmd.PersistentFlags().BoolVar(&nagios, "nagios", false, MsgFlagNagios)
	rootCmd.PersistentFlags().StringVar(&format, "format", "", MsgFlagFormat)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(docsCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listServerCmd)
	rootCmd.AddCommand(showServerCmd)
	rootCmd.AddCommand(listBackupCmd)
	rootCmd.AddCommand(showBackupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(diagnoseCmd)

	listBackupCmd.Flags().BoolVar(&minimal, "minimal", false, MsgFlagMinimal)
	listServerCmd.Flags().BoolVar(&minimal, "minimal", false, MsgFlagMinimal)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobarman version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var manDir string

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  MsgManShort,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "GOBARMAN",
			Section: "1",
			Source:  "gobarman " + version.Version,
		}
		return doc.GenManTree(rootCmd, header, manDir)
	},
}

func init() {
	manCmd.Flags().StringVar(&manDir, "dir", ".", "Directory to write man pages to")
}
