package output

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestController returns a controller wired to buffers instead of the
// process streams, with exits recorded instead of performed.
func newTestController(t *testing.T) (*Controller, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	c := NewController()
	c.SetLogger(zerolog.Nop())

	exitCode := -1
	c.exit = func(code int) { exitCode = code }

	var out, errOut bytes.Buffer
	c.SetWriter(NewConsoleWriter(WriterOptions{Stdout: &out, Stderr: &errOut}))
	return c, &out, &errOut, &exitCode
}

// recordingWriter counts lifecycle calls for writer-replacement tests
type recordingWriter struct {
	closed int
	events *[]string
	label  string
}

func (w *recordingWriter) Debug(string, ...any)     {}
func (w *recordingWriter) Info(string, ...any)      {}
func (w *recordingWriter) Warning(string, ...any)   {}
func (w *recordingWriter) Error(string, ...any)     {}
func (w *recordingWriter) Exception(string, ...any) {}
func (w *recordingWriter) ErrorOccurred()           {}
func (w *recordingWriter) Close() {
	w.closed++
	if w.events != nil {
		*w.events = append(*w.events, w.label+".close")
	}
}

func TestErrorStateIsMonotonic(t *testing.T) {
	c, _, _, _ := newTestController(t)

	require.False(t, c.ErrorOccurred())
	assert.Equal(t, 0, c.ExitCode())

	c.Error("something went wrong")
	assert.True(t, c.ErrorOccurred())
	assert.Equal(t, 1, c.ExitCode())

	// Subsequent successful output does not reset the flag.
	c.Info("all good now")
	c.Warning("just a warning")
	assert.True(t, c.ErrorOccurred())
}

func TestExceptionSetsErrorState(t *testing.T) {
	c, _, _, _ := newTestController(t)

	c.Exception("boom")
	assert.True(t, c.ErrorOccurred())
}

func TestIgnoredErrorDoesNotSetErrorState(t *testing.T) {
	c, _, errOut, _ := newTestController(t)

	c.Emit(LevelError, EmitOptions{Ignore: true}, "recoverable: %s", "retrying")
	assert.False(t, c.ErrorOccurred())
	assert.Equal(t, 0, c.ExitCode())
	// The message is still rendered.
	assert.Contains(t, errOut.String(), "ERROR: recoverable: retrying")
}

func TestWarningDoesNotSetErrorState(t *testing.T) {
	c, _, _, _ := newTestController(t)

	c.Warning("low disk space")
	assert.False(t, c.ErrorOccurred())
}

func TestExceptionErrReturnsTheError(t *testing.T) {
	c, _, errOut, _ := newTestController(t)

	cause := assert.AnError
	err := c.ExceptionErr(cause, "operation failed")
	assert.Same(t, cause, err)
	assert.True(t, c.ErrorOccurred())
	assert.Contains(t, errOut.String(), "EXCEPTION: operation failed")
}

func TestFailingCheckSetsErrorState(t *testing.T) {
	c, out, _, _ := newTestController(t)

	c.Result("check", "pg1", "wal archiving", false)
	assert.True(t, c.ErrorOccurred())
	assert.Contains(t, out.String(), "wal archiving: FAILED")
}

func TestSetWriterClosesPreviousWriterOnce(t *testing.T) {
	c, _, _, _ := newTestController(t)

	var events []string
	old := &recordingWriter{events: &events, label: "old"}
	c.SetWriter(old)

	next := &recordingWriter{events: &events, label: "next"}
	c.SetWriter(next)

	assert.Equal(t, 1, old.closed)
	assert.Zero(t, next.closed)
	assert.Equal(t, []string{"old.close"}, events)
}

func TestSetWriterByName(t *testing.T) {
	c, _, _, _ := newTestController(t)

	var out bytes.Buffer
	err := c.SetWriterByName("console", WriterOptions{Stdout: &out, Stderr: &out})
	require.NoError(t, err)
	_, ok := c.Writer().(*ConsoleWriter)
	assert.True(t, ok)

	err = c.SetWriterByName("nagios", WriterOptions{})
	assert.Error(t, err, "nagios must not be in the registry")
}

func TestAvailableWriters(t *testing.T) {
	names := AvailableWriters()
	assert.Contains(t, names, "console")
	assert.Contains(t, names, "json")
	assert.NotContains(t, names, "nagios")
}

func TestCloseAndExitCodes(t *testing.T) {
	t.Run("clean_run_exits_zero", func(t *testing.T) {
		c, _, _, exitCode := newTestController(t)
		c.CloseAndExit()
		assert.Equal(t, 0, *exitCode)
	})

	t.Run("error_run_exits_one", func(t *testing.T) {
		c, _, _, exitCode := newTestController(t)
		c.Error("failed")
		c.CloseAndExit()
		assert.Equal(t, 1, *exitCode)
	})

	t.Run("escalated_exit_code", func(t *testing.T) {
		c, _, _, exitCode := newTestController(t)
		c.Error("failed")
		c.SetErrorExitCode(2)
		c.CloseAndExit()
		assert.Equal(t, 2, *exitCode)
	})
}

func TestUnsupportedCommandTerminatesRun(t *testing.T) {
	c, _, errOut, exitCode := newTestController(t)

	c.Result("nosuchcommand")

	assert.True(t, c.ErrorOccurred())
	assert.Equal(t, 1, *exitCode)
	assert.Contains(t, errOut.String(), "does not support")
	assert.Contains(t, errOut.String(), "nosuchcommand")
}

func TestInitWithoutCapabilityTerminatesRun(t *testing.T) {
	c, _, _, exitCode := newTestController(t)

	// The recording writer implements no command capabilities.
	c.SetWriter(&recordingWriter{})
	c.Init("check", "pg1")

	assert.True(t, c.ErrorOccurred())
	assert.Equal(t, 1, *exitCode)
}

func TestInitPhaseMissingForCommand(t *testing.T) {
	// show-backup has a result phase but no init phase.
	c, _, errOut, exitCode := newTestController(t)

	c.Init("show-backup")

	assert.Equal(t, 1, *exitCode)
	assert.Contains(t, errOut.String(), "show-backup")
}

func TestMismatchedArgumentPanics(t *testing.T) {
	c, _, _, _ := newTestController(t)

	assert.Panics(t, func() {
		c.Result("check", "pg1", "some check", "not-a-bool")
	})
	assert.Panics(t, func() {
		c.Result("check", "pg1")
	})
}

func TestErrorOccurredHookRunsBeforeRendering(t *testing.T) {
	c, _, _, _ := newTestController(t)

	var order []string
	w := &hookOrderWriter{order: &order}
	c.SetWriter(w)

	c.Error("failed")
	assert.Equal(t, []string{"error_occurred", "error"}, order)
}

type hookOrderWriter struct {
	recordingWriter
	order *[]string
}

func (w *hookOrderWriter) ErrorOccurred() {
	*w.order = append(*w.order, "error_occurred")
}

func (w *hookOrderWriter) Error(string, ...any) {
	*w.order = append(*w.order, "error")
}
