package output

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/espressodb/gobarman/pkg/errors"
	"github.com/espressodb/gobarman/pkg/logging"
)

// Level is the severity of an emitted message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelException
)

// String returns the lowercase severity name
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelException:
		return "exception"
	}
	return "unknown"
}

// EmitOptions carries the optional knobs of an emit call. The zero value is
// the default behavior: log the message, record error state for error and
// exception severities.
type EmitOptions struct {
	// NoLog suppresses mirroring the message to the logger.
	NoLog bool
	// Ignore prevents error and exception emits from recording global
	// error state.
	Ignore bool
	// Err is the error being reported, attached to the log entry of
	// exception emits. Propagating it is the caller's responsibility.
	Err error
}

// Controller holds the state of one output session: the active writer, the
// error flag and the exit code to use when an error occurred. A single
// control goroutine is assumed to drive it; no locking is provided.
type Controller struct {
	writer        Writer
	logger        zerolog.Logger
	errorOccurred bool
	errorExitCode int
	exit          func(code int)
}

// NewController returns a controller with a console writer on the standard
// streams and exit code 1 on error.
func NewController() *Controller {
	c := &Controller{
		logger:        logging.GetLogger("output"),
		errorExitCode: 1,
		exit:          os.Exit,
	}
	c.writer = NewConsoleWriter(WriterOptions{})
	c.attach(c.writer)
	return c
}

// SetLogger replaces the logger messages are mirrored to. Callers pass
// their own component logger instead of relying on call-stack attribution.
func (c *Controller) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// Writer returns the active writer.
func (c *Controller) Writer() Writer {
	return c.writer
}

// ErrorOccurred reports whether any error-severity event was recorded.
// The flag is monotonic: once set it stays set for the rest of the run.
func (c *Controller) ErrorOccurred() bool {
	return c.errorOccurred
}

// MarkError records that an error occurred during the run.
func (c *Controller) MarkError() {
	c.errorOccurred = true
}

// ExitCode returns the code the process will exit with: 0 if no error was
// recorded, otherwise the current error exit code.
func (c *Controller) ExitCode() int {
	if c.errorOccurred {
		return c.errorExitCode
	}
	return 0
}

// SetErrorExitCode overrides the exit code used when an error occurred.
// The nagios writer escalates it to 2 on failed checks.
func (c *Controller) SetErrorExitCode(code int) {
	c.errorExitCode = code
}

// Debug emits a message with severity debug.
func (c *Controller) Debug(template string, args ...any) {
	c.Emit(LevelDebug, EmitOptions{}, template, args...)
}

// Info emits a message with severity info.
func (c *Controller) Info(template string, args ...any) {
	c.Emit(LevelInfo, EmitOptions{}, template, args...)
}

// Warning emits a message with severity warning.
func (c *Controller) Warning(template string, args ...any) {
	c.Emit(LevelWarning, EmitOptions{}, template, args...)
}

// Error emits a message with severity error and records error state.
func (c *Controller) Error(template string, args ...any) {
	c.Emit(LevelError, EmitOptions{}, template, args...)
}

// Exception emits a message with severity exception and records error state.
func (c *Controller) Exception(template string, args ...any) {
	c.Emit(LevelException, EmitOptions{}, template, args...)
}

// ExceptionErr emits err as an exception message and returns it unchanged,
// so reporting and propagation can share one call site.
func (c *Controller) ExceptionErr(err error, template string, args ...any) error {
	c.Emit(LevelException, EmitOptions{Err: err}, template, args...)
	return err
}

// Emit sends a message to the active writer with explicit options.
//
// For error and exception severities the error state is recorded and the
// writer's ErrorOccurred hook runs before the rendering method, unless
// opts.Ignore is set. The raw template and arguments are handed to the
// writer so each writer applies its own formatting; the mirrored log entry
// uses the formatted text.
func (c *Controller) Emit(level Level, opts EmitOptions, template string, args ...any) {
	if (level == LevelError || level == LevelException) && !opts.Ignore {
		c.errorOccurred = true
		c.writer.ErrorOccurred()
	}

	switch level {
	case LevelDebug:
		c.writer.Debug(template, args...)
	case LevelInfo:
		c.writer.Info(template, args...)
	case LevelWarning:
		c.writer.Warning(template, args...)
	case LevelError:
		c.writer.Error(template, args...)
	case LevelException:
		c.writer.Exception(template, args...)
	}

	if opts.NoLog {
		return
	}
	message := Format(template, args...)
	switch level {
	case LevelDebug:
		c.logger.Debug().Msg(message)
	case LevelInfo:
		c.logger.Info().Msg(message)
	case LevelWarning:
		c.logger.Warn().Msg(message)
	case LevelError:
		c.logger.Error().Msg(message)
	case LevelException:
		// Exceptions log at error level with the error attached.
		c.logger.Error().Err(opts.Err).Msg(message)
	}
}

// Init announces that a command is starting to the active writer.
// An unknown command, or a writer lacking the capability, is a usage error:
// it is reported as an exception and the run terminates.
func (c *Controller) Init(command string, args ...any) {
	if !dispatch(c.writer, phaseInit, command, args) {
		c.unsupported(command)
	}
}

// Result reports the result of an operation to the active writer, with the
// same unsupported-command behavior as Init.
func (c *Controller) Result(command string, args ...any) {
	if !dispatch(c.writer, phaseResult, command, args) {
		c.unsupported(command)
	}
}

func (c *Controller) unsupported(command string) {
	err := errors.Newf(errors.ErrUnsupportedCommand,
		"unsupported output command %q", command)
	c.Emit(LevelException, EmitOptions{Err: err},
		"The %s writer does not support the %q command",
		writerName(c.writer), command)
	c.CloseAndExit()
}

// Close closes the active writer, running its finalization side effects.
func (c *Controller) Close() {
	c.writer.Close()
}

// CloseAndExit closes the active writer and terminates the process with the
// session's exit code.
func (c *Controller) CloseAndExit() {
	c.Close()
	c.exit(c.ExitCode())
}

// SetWriter installs w as the active writer. The previous writer is closed
// first so its finalization runs before any call reaches the new one.
func (c *Controller) SetWriter(w Writer) {
	if c.writer != nil {
		c.writer.Close()
	}
	c.attach(w)
	c.writer = w
}

// SetWriterByName looks the name up in the writer registry, builds the
// writer with the given options and installs it.
func (c *Controller) SetWriterByName(name string, opts WriterOptions) error {
	factory, err := writers.Get(name)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnknownWriter,
			"unknown output writer %q", name)
	}
	c.SetWriter(factory(opts))
	return nil
}

func (c *Controller) attach(w Writer) {
	if aware, ok := w.(SessionAware); ok {
		aware.AttachSession(c)
	}
}

// std is the process-wide controller backing the package-level facade,
// mirroring how zerolog exposes its global logger.
var std = NewController()

// Default returns the package-level controller.
func Default() *Controller { return std }

// Debug emits a debug message through the default controller.
func Debug(template string, args ...any) { std.Debug(template, args...) }

// Info emits an info message through the default controller.
func Info(template string, args ...any) { std.Info(template, args...) }

// Warning emits a warning message through the default controller.
func Warning(template string, args ...any) { std.Warning(template, args...) }

// Error emits an error message through the default controller.
func Error(template string, args ...any) { std.Error(template, args...) }

// Exception emits an exception message through the default controller.
func Exception(template string, args ...any) { std.Exception(template, args...) }

// ExceptionErr reports err through the default controller and returns it.
func ExceptionErr(err error, template string, args ...any) error {
	return std.ExceptionErr(err, template, args...)
}

// Emit sends a message with explicit options through the default controller.
func Emit(level Level, opts EmitOptions, template string, args ...any) {
	std.Emit(level, opts, template, args...)
}

// Init dispatches a command start through the default controller.
func Init(command string, args ...any) { std.Init(command, args...) }

// Result dispatches a command result through the default controller.
func Result(command string, args ...any) { std.Result(command, args...) }

// Close closes the default controller's writer.
func Close() { std.Close() }

// CloseAndExit closes the default controller's writer and exits.
func CloseAndExit() { std.CloseAndExit() }

// SetWriter installs a writer on the default controller.
func SetWriter(w Writer) { std.SetWriter(w) }

// SetWriterByName installs a registered writer on the default controller.
func SetWriterByName(name string, opts WriterOptions) error {
	return std.SetWriterByName(name, opts)
}

// ErrorOccurred reports the default controller's error state.
func ErrorOccurred() bool { return std.ErrorOccurred() }
