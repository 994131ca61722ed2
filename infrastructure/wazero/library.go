package wazero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
)

var (
	// ErrMissingExport is returned when the guest lacks part of the ABI.
	ErrMissingExport = errors.New("guest module missing export")

	// ErrRequestTooLarge is returned when a request exceeds MaxRequestSize.
	ErrRequestTooLarge = errors.New("request too large")

	errNullResponse = errors.New("null response from guest")
)

type exports struct {
	allocate   api.Function
	deallocate api.Function
	init       api.Function
	runCommand api.Function
	freeMem    api.Function
}

// Library runs the WASM build of the library in a wazero runtime. Calls are
// serialized; a module instance is single threaded.
type Library struct {
	runtime wazero.Runtime
	module  api.Module
	fns     exports
	cfg     Config
	mu      sync.Mutex
	closed  bool
}

// NewLibrary compiles and instantiates wasmBytes and checks that it exports
// the library ABI.
func NewLibrary(ctx context.Context, wasmBytes []byte, opts ...Option) (*Library, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	rtCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		rtCfg = rtCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rtCfg)

	fail := func(op string, err error) (*Library, error) {
		_ = rt.Close(ctx)
		return nil, &sdkerrors.LibraryError{Operation: op, Err: err}
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return fail("instantiate", fmt.Errorf("wasi: %w", err))
	}
	if err := registerHostModule(ctx, rt, cfg); err != nil {
		return fail("instantiate", fmt.Errorf("host module: %w", err))
	}

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return fail("compile", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName(cfg.ModuleName).WithStartFunctions("_initialize"))
	if err != nil {
		return fail("instantiate", err)
	}

	fns, err := lookupExports(mod)
	if err != nil {
		return fail("instantiate", err)
	}

	cfg.Logger.DebugContext(ctx, "wazero: library instantiated", "module", cfg.ModuleName)
	return &Library{runtime: rt, module: mod, fns: fns, cfg: cfg}, nil
}

func lookupExports(mod api.Module) (exports, error) {
	var fns exports
	for _, e := range []struct {
		name string
		dst  *api.Function
	}{
		{"allocate", &fns.allocate},
		{"deallocate", &fns.deallocate},
		{"init", &fns.init},
		{"run_command", &fns.runCommand},
		{"free_mem", &fns.freeMem},
	} {
		f := mod.ExportedFunction(e.name)
		if f == nil {
			return fns, fmt.Errorf("%w: %s", ErrMissingExport, e.name)
		}
		*e.dst = f
	}
	if mod.Memory() == nil {
		return fns, fmt.Errorf("%w: memory", ErrMissingExport)
	}
	return fns, nil
}

// Init implements ports.Library.
func (l *Library) Init(ctx context.Context, settings string) (ports.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, sdkerrors.ErrClientClosed
	}

	packed, err := l.write(ctx, []byte(settings))
	if err != nil {
		return 0, &sdkerrors.LibraryError{Operation: "init", Err: err}
	}
	defer l.release(ctx, packed)

	res, err := l.fns.init.Call(ctx, packed)
	if err != nil {
		return 0, &sdkerrors.LibraryError{Operation: "init", Err: err}
	}
	if len(res) == 0 || uint32(res[0]) == 0 { //nolint:gosec // G115: i32 result
		return 0, &sdkerrors.LibraryError{Operation: "init", Err: sdkerrors.ErrNilHandle}
	}
	return ports.Handle(uint32(res[0])), nil //nolint:gosec // G115: i32 result
}

// RunCommand implements ports.Library.
func (l *Library) RunCommand(ctx context.Context, command string, h ports.Handle) (string, error) {
	if uint64(h) > math.MaxUint32 {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: fmt.Errorf("handle %#x out of range", uintptr(h))}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", sdkerrors.ErrClientClosed
	}

	packed, err := l.write(ctx, []byte(command))
	if err != nil {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: err}
	}
	defer l.release(ctx, packed)

	res, err := l.fns.runCommand.Call(ctx, packed, uint64(h))
	if err != nil {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: err}
	}
	if len(res) == 0 {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: errNullResponse}
	}

	out, err := l.read(res[0])
	if err != nil {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: err}
	}
	if res[0] != packed {
		l.release(ctx, res[0])
	}
	return string(out), nil
}

// Free implements ports.Library.
func (l *Library) Free(ctx context.Context, h ports.Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return sdkerrors.ErrClientClosed
	}
	if _, err := l.fns.freeMem.Call(ctx, uint64(h)); err != nil {
		return &sdkerrors.LibraryError{Operation: "free_mem", Err: err}
	}
	return nil
}

// Close tears down the runtime. It is safe to call more than once.
func (l *Library) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.runtime.Close(ctx)
}

// write copies data into guest memory obtained from allocate.
func (l *Library) write(ctx context.Context, data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if uint64(len(data)) > uint64(l.cfg.MaxRequestSize) {
		return 0, fmt.Errorf("%w: %d bytes exceeds maximum %d", ErrRequestTooLarge, len(data), l.cfg.MaxRequestSize)
	}

	size := uint32(len(data)) //nolint:gosec // G115: bounded by MaxRequestSize
	res, err := l.fns.allocate.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("allocate: %w", err)
	}
	if len(res) == 0 || uint32(res[0]) == 0 { //nolint:gosec // G115: WASM32 pointers are always 32-bit
		return 0, errors.New("allocate returned null")
	}
	ptr := uint32(res[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !l.module.Memory().Write(ptr, data) {
		return 0, errors.New("failed to write request to guest memory")
	}
	return packPtrLen(ptr, size), nil
}

// read copies a packed response out of guest memory.
func (l *Library) read(packed uint64) ([]byte, error) {
	ptr, length := unpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil, errNullResponse
	}
	view, ok := l.module.Memory().Read(ptr, length)
	if !ok {
		return nil, errors.New("failed to read response from guest memory")
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// release hands a packed buffer back to the guest.
func (l *Library) release(ctx context.Context, packed uint64) {
	ptr, length := unpackPtrLen(packed)
	if ptr == 0 {
		return
	}
	if _, err := l.fns.deallocate.Call(ctx, uint64(ptr), uint64(length)); err != nil {
		l.cfg.Logger.WarnContext(ctx, "wazero: deallocate failed", "error", err)
	}
}

var _ ports.Library = (*Library)(nil)
