package wazero

import (
	"context"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

type logRecord struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// registerHostModule exports log_message to the guest. Records are JSON
// {level, message}; anything else is reported by size only, since the guest
// may be echoing request text that carries secret values.
func registerHostModule(ctx context.Context, rt wazero.Runtime, cfg Config) error {
	logger := cfg.Logger
	_, err := rt.NewHostModuleBuilder(cfg.HostModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			ptr, length := unpackPtrLen(stack[0])
			if length > cfg.MaxRequestSize {
				logger.WarnContext(ctx, "wazero: guest log record too large", "size", length)
				return
			}
			payload, ok := mod.Memory().Read(ptr, length)
			if !ok {
				logger.WarnContext(ctx, "wazero: guest log record out of bounds", "ptr", ptr, "size", length)
				return
			}

			var rec logRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				logger.InfoContext(ctx, "wazero: unstructured guest log record", "size", len(payload))
				return
			}
			logger.Log(ctx, parseLevel(rec.Level), rec.Message, "module", mod.Name())
		}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{}).
		Export("log_message").
		Instantiate(ctx)
	return err
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
