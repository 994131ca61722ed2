// Package sdk is the Go client for the Secrets Manager library.
//
// A Client owns one library client handle. Every operation is serialized to a
// JSON command, sent through the library entry point, and the JSON response
// envelope is decoded into a typed result.
//
//	client, err := sdk.NewClient(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	if err := client.AccessTokenLogin(ctx, token, nil); err != nil {
//	    return err
//	}
//	secrets, err := client.Secrets().List(ctx, orgID)
//
// By default the native C library is used; binaries built without it (no cgo
// or no sdknative tag) must pass WithLibrary, for example a WASM library from
// infrastructure/wazero.
package sdk
