package wazero

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loggingGuest is echoGuest with an sm_host.log_message import: run_command
// forwards its packed input to log_message and then returns it.
func loggingGuest() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		// type section
		0x01, 0x1e, 0x06,
		0x60, 0x01, 0x7f, 0x01, 0x7f, // (i32) -> i32
		0x60, 0x02, 0x7f, 0x7f, 0x00, // (i32, i32)
		0x60, 0x01, 0x7e, 0x01, 0x7f, // (i64) -> i32
		0x60, 0x02, 0x7e, 0x7f, 0x01, 0x7e, // (i64, i32) -> i64
		0x60, 0x01, 0x7f, 0x00, // (i32)
		0x60, 0x01, 0x7e, 0x00, // (i64)
		// import section: sm_host.log_message
		0x02, 0x17, 0x01,
		0x07, 's', 'm', '_', 'h', 'o', 's', 't',
		0x0b, 'l', 'o', 'g', '_', 'm', 'e', 's', 's', 'a', 'g', 'e',
		0x00, 0x05,
		// function section
		0x03, 0x06, 0x05, 0x00, 0x01, 0x02, 0x03, 0x04,
		// memory section: one page
		0x05, 0x03, 0x01, 0x00, 0x01,
		// global section: mutable i32 = 1024
		0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b,
		// export section, function indices shifted past the import
		0x07, 0x42, 0x06,
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
		0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x01,
		0x0a, 'd', 'e', 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x02,
		0x04, 'i', 'n', 'i', 't', 0x00, 0x03,
		0x0b, 'r', 'u', 'n', '_', 'c', 'o', 'm', 'm', 'a', 'n', 'd', 0x00, 0x04,
		0x08, 'f', 'r', 'e', 'e', '_', 'm', 'e', 'm', 0x00, 0x05,
		// code section
		0x0a, 0x21, 0x05,
		0x0b, 0x00, 0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00, 0x0b, // allocate
		0x02, 0x00, 0x0b, // deallocate
		0x04, 0x00, 0x41, 0x01, 0x0b, // init
		0x08, 0x00, 0x20, 0x00, 0x10, 0x00, 0x20, 0x00, 0x0b, // run_command
		0x02, 0x00, 0x0b, // free_mem
	}
}

func newLoggingLibrary(t *testing.T, opts ...Option) (*Library, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lib, err := NewLibrary(context.Background(), loggingGuest(), append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close(context.Background()) })
	return lib, &buf
}

// record returns the first logged record whose msg is msg.
func record(t *testing.T, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		if rec["msg"] == msg {
			return rec
		}
	}
	t.Fatalf("no %q record in:\n%s", msg, buf.String())
	return nil
}

func TestHostLog_ForwardsRecordToLogger(t *testing.T) {
	ctx := context.Background()
	lib, buf := newLoggingLibrary(t)

	in := `{"level":"warn","message":"sync started"}`
	out, err := lib.RunCommand(ctx, in, 1)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	rec := record(t, buf, "sync started")
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "bitwarden", rec["module"])
}

func TestHostLog_MissingLevelIsInfo(t *testing.T) {
	lib, buf := newLoggingLibrary(t)

	_, err := lib.RunCommand(context.Background(), `{"message":"no level"}`, 1)
	require.NoError(t, err)

	assert.Equal(t, "INFO", record(t, buf, "no level")["level"])
}

func TestHostLog_UnstructuredRecordLogsSizeOnly(t *testing.T) {
	lib, buf := newLoggingLibrary(t)

	_, err := lib.RunCommand(context.Background(), "password=hunter2", 1)
	require.NoError(t, err)

	rec := record(t, buf, "wazero: unstructured guest log record")
	assert.Equal(t, "INFO", rec["level"])
	assert.EqualValues(t, 16, rec["size"])
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestHostLog_OversizedRecordDropped(t *testing.T) {
	ctx := context.Background()
	lib, buf := newLoggingLibrary(t, WithMaxRequestSize(64))

	_, err := lib.fns.runCommand.Call(ctx, packPtrLen(0, 1<<20), 1)
	require.NoError(t, err)

	rec := record(t, buf, "wazero: guest log record too large")
	assert.Equal(t, "WARN", rec["level"])
	assert.EqualValues(t, 1<<20, rec["size"])
}

func TestHostLog_OutOfBoundsRecordDropped(t *testing.T) {
	ctx := context.Background()
	lib, buf := newLoggingLibrary(t)

	_, err := lib.fns.runCommand.Call(ctx, packPtrLen(0xFFFF0000, 8), 1)
	require.NoError(t, err)

	rec := record(t, buf, "wazero: guest log record out of bounds")
	assert.Equal(t, "WARN", rec["level"])
	assert.EqualValues(t, 8, rec["size"])
}
