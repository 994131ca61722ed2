// smctl is a command line client for Secrets Manager built on the Go SDK.
// It reads settings from secrets-sdk.yaml, BWS_* environment variables and
// flags, and prints JSON results to stdout.
package main

import (
	"fmt"
	"os"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/wireformat"
)

func main() {
	root := newRootCmd(newApp())
	if err := root.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError writes the error to stderr as a JSON ErrorDetail.
func printError(err error) {
	b, merr := wireformat.MarshalIndent(sdkerrors.ToErrorDetail(err))
	if merr != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	fmt.Fprintln(os.Stderr, string(b))
}
