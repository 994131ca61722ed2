// Package ports defines the interfaces between the SDK and the library it
// drives. The application layer depends on these abstractions; the native and
// WASM adapters under infrastructure implement them.
package ports
