// Package wireformat encodes commands and decodes response envelopes for the
// library boundary. These shapes are the ABI contract with the library and
// must stay backward compatible.
package wireformat

import (
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

var errEmptyResponse = errors.New("empty response")

// EncodeCommand marshals cmd into the JSON text the library expects.
func EncodeCommand(cmd entities.Command) (string, error) {
	b, err := json.Marshal(cmd)
	if err != nil {
		return "", &sdkerrors.WireFormatError{Operation: "encode", Type: "Command", Err: err}
	}
	return string(b), nil
}

// EncodeSettings marshals client settings for library initialization.
func EncodeSettings(s entities.ClientSettings) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", &sdkerrors.WireFormatError{Operation: "encode", Type: "ClientSettings", Err: err}
	}
	return string(b), nil
}

// DecodeResponse unmarshals a response envelope carrying a T payload.
func DecodeResponse[T any](data []byte) (*entities.Response[T], error) {
	if len(data) == 0 {
		return nil, &sdkerrors.WireFormatError{Operation: "decode", Type: typeName[T](), Err: errEmptyResponse}
	}
	var resp entities.Response[T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &sdkerrors.WireFormatError{Operation: "decode", Type: typeName[T](), Err: err}
	}
	return &resp, nil
}

// Marshal is the codec used for everything else that crosses the boundary,
// e.g. CLI output.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Name() == "" {
		return fmt.Sprint(t)
	}
	return t.Name()
}
