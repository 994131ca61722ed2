// Package entities provides the core domain types of the Secrets Manager SDK.
//
// Command is the tagged union sent across the library boundary; each field maps
// to one JSON key and exactly one of them is set per command. Response is the
// envelope every command answers with. The remaining types are the request and
// payload shapes of the access-token, project and secret operations.
package entities
