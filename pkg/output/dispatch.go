package output

import (
	"fmt"

	"github.com/espressodb/gobarman/pkg/types"
)

type phase int

const (
	phaseInit phase = iota
	phaseResult
)

// commandSpec adapts the untyped Init/Result call surface to the typed
// capability interfaces. Each adapter returns false when the writer does not
// implement the command, which the controller turns into the fail-fast
// unsupported-command path. A nil phase function means the command has no
// such phase at all.
type commandSpec struct {
	init   func(w Writer, args []any) bool
	result func(w Writer, args []any) bool
}

var commands = map[string]commandSpec{
	"check": {
		init: func(w Writer, args []any) bool {
			cw, ok := w.(CheckWriter)
			if !ok {
				return false
			}
			cw.InitCheck(stringArg("check", args, 0))
			return true
		},
		result: func(w Writer, args []any) bool {
			cw, ok := w.(CheckWriter)
			if !ok {
				return false
			}
			cw.ResultCheck(
				stringArg("check", args, 0),
				stringArg("check", args, 1),
				boolArg("check", args, 2),
				optionalStringArg("check", args, 3))
			return true
		},
	},
	"backup": {
		result: func(w Writer, args []any) bool {
			br, ok := w.(BackupReporter)
			if !ok {
				return false
			}
			br.ResultBackup(backupArg("backup", args, 0))
			return true
		},
	},
	"list-backup": {
		init: func(w Writer, args []any) bool {
			bw, ok := w.(BackupListWriter)
			if !ok {
				return false
			}
			bw.InitListBackup(
				stringArg("list-backup", args, 0),
				optionalBoolArg("list-backup", args, 1))
			return true
		},
		result: func(w Writer, args []any) bool {
			bw, ok := w.(BackupListWriter)
			if !ok {
				return false
			}
			bw.ResultListBackup(
				backupArg("list-backup", args, 0),
				intArg("list-backup", args, 1),
				intArg("list-backup", args, 2),
				optionalStringArg("list-backup", args, 3))
			return true
		},
	},
	"show-backup": {
		result: func(w Writer, args []any) bool {
			bw, ok := w.(BackupShowWriter)
			if !ok {
				return false
			}
			ext, ok := argAt("show-backup", args, 0).(*types.BackupExtInfo)
			if !ok {
				badArg("show-backup", args, 0, "*types.BackupExtInfo")
			}
			bw.ResultShowBackup(ext)
			return true
		},
	},
	"status": {
		init: func(w Writer, args []any) bool {
			sw, ok := w.(StatusWriter)
			if !ok {
				return false
			}
			sw.InitStatus(stringArg("status", args, 0))
			return true
		},
		result: func(w Writer, args []any) bool {
			sw, ok := w.(StatusWriter)
			if !ok {
				return false
			}
			sw.ResultStatus(
				stringArg("status", args, 0),
				stringArg("status", args, 1),
				stringArg("status", args, 2),
				argAt("status", args, 3))
			return true
		},
	},
	"list-server": {
		init: func(w Writer, args []any) bool {
			sw, ok := w.(ServerListWriter)
			if !ok {
				return false
			}
			sw.InitListServer(
				stringArg("list-server", args, 0),
				optionalBoolArg("list-server", args, 1))
			return true
		},
		result: func(w Writer, args []any) bool {
			sw, ok := w.(ServerListWriter)
			if !ok {
				return false
			}
			sw.ResultListServer(
				stringArg("list-server", args, 0),
				optionalStringArg("list-server", args, 1))
			return true
		},
	},
	"show-server": {
		init: func(w Writer, args []any) bool {
			sw, ok := w.(ServerShowWriter)
			if !ok {
				return false
			}
			sw.InitShowServer(stringArg("show-server", args, 0))
			return true
		},
		result: func(w Writer, args []any) bool {
			sw, ok := w.(ServerShowWriter)
			if !ok {
				return false
			}
			fields, ok := argAt("show-server", args, 1).([]types.ServerInfoField)
			if !ok {
				badArg("show-server", args, 1, "[]types.ServerInfoField")
			}
			sw.ResultShowServer(stringArg("show-server", args, 0), fields)
			return true
		},
	},
}

// dispatch routes the command to the writer's capability method for the
// given phase. It returns false for unknown commands and for writers that
// do not implement the command.
func dispatch(w Writer, p phase, command string, args []any) bool {
	spec, ok := commands[command]
	if !ok {
		return false
	}
	fn := spec.init
	if p == phaseResult {
		fn = spec.result
	}
	if fn == nil {
		return false
	}
	return fn(w, args)
}

// writerName identifies a writer in diagnostics.
func writerName(w Writer) string {
	return fmt.Sprintf("%T", w)
}

// Argument mismatches are programmer errors on the calling side, reported
// with the command name and argument position.

func argAt(command string, args []any, i int) any {
	if i >= len(args) {
		panic(fmt.Sprintf("output: %s: missing argument %d", command, i))
	}
	return args[i]
}

func badArg(command string, args []any, i int, want string) {
	panic(fmt.Sprintf("output: %s: argument %d must be %s, got %T",
		command, i, want, args[i]))
}

func stringArg(command string, args []any, i int) string {
	s, ok := argAt(command, args, i).(string)
	if !ok {
		badArg(command, args, i, "string")
	}
	return s
}

func optionalStringArg(command string, args []any, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	s, ok := args[i].(string)
	if !ok {
		badArg(command, args, i, "string")
	}
	return s
}

func boolArg(command string, args []any, i int) bool {
	b, ok := argAt(command, args, i).(bool)
	if !ok {
		badArg(command, args, i, "bool")
	}
	return b
}

func optionalBoolArg(command string, args []any, i int) bool {
	if i >= len(args) {
		return false
	}
	b, ok := args[i].(bool)
	if !ok {
		badArg(command, args, i, "bool")
	}
	return b
}

func intArg(command string, args []any, i int) int64 {
	switch v := argAt(command, args, i).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	badArg(command, args, i, "int64")
	return 0
}

func backupArg(command string, args []any, i int) *types.BackupInfo {
	info, ok := argAt(command, args, i).(*types.BackupInfo)
	if !ok {
		badArg(command, args, i, "*types.BackupInfo")
	}
	return info
}
