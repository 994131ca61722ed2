// Package wazero hosts a WebAssembly build of the Secrets Manager library and
// exposes it as a ports.Library.
//
// The guest module must export:
//
//	allocate(size i32) i32
//	deallocate(ptr i32, size i32)
//	init(settings i64) i32
//	run_command(command i64, client i32) i64
//	free_mem(client i32)
//
// Strings cross the boundary as packed i64 values: pointer in the upper 32
// bits, length in the lower 32 bits. The host writes requests into memory it
// obtained from allocate and releases them with deallocate once the call
// returns; responses are read, copied and then released the same way.
//
// The guest may import log_message(record i64) from the host module
// (default "sm_host") to emit JSON log records of the form
// {"level":"info","message":"..."}.
//
// # Basic Usage
//
//	wasmBytes, _ := os.ReadFile("bitwarden_wasm.wasm")
//	lib, err := wazero.NewLibrary(ctx, wasmBytes,
//	    wazero.WithMaxRequestSize(4<<20),
//	)
//	if err != nil {
//	    return err
//	}
//	defer lib.Close(ctx)
package wazero
