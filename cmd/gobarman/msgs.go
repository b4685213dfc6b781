package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Backup and recovery manager for PostgreSQL servers"
	MsgRootLong  = `gobarman manages a catalog of PostgreSQL base backups and archived WAL
segments. It lists, inspects and health-checks the backups of the servers
defined in its configuration, with output suitable for humans, scripts or
monitoring systems.`

	MsgCheckShort = "Check the backup catalog of the given servers"
	MsgCheckLong  = `Check runs the local health checks of each selected server: catalog
directory layout, metadata integrity and the minimum redundancy
requirement. With --nagios the run prints a single monitoring-plugin
status line instead of per-check output.`
	MsgListServerShort = "List the configured servers"
	MsgShowServerShort = "Show the configuration and catalog summary of a server"
	MsgListBackupShort = "List the backups available for the given servers"
	MsgShowBackupShort = "Show detailed information about a backup"
	MsgStatusShort     = "Show the status of the given servers"
	MsgDiagnoseShort   = "Dump the full configuration and catalog as JSON"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages"
	MsgDocsShort       = "Display documentation topics"

	// Flag descriptions
	MsgFlagConfig  = "Path to the configuration file"
	MsgFlagQuiet   = "Suppress informational output"
	MsgFlagDebug   = "Print debug messages on standard error"
	MsgFlagNagios  = "Nagios plugin output mode (aggregate status line on exit)"
	MsgFlagFormat  = "Output format (console, json)"
	MsgFlagMinimal = "Machine readable output: bare identifiers only"
)

// MsgUsageTemplate is the cobra usage template with section headers rendered
// through the template funcs registered by initTemplateFormatting.
const MsgUsageTemplate = `{{boldUpper "usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "available commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{bold .CommandPath}} [command] --help" for more information about a command.{{end}}
`
