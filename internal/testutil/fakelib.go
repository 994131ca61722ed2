package testutil

import (
	"context"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
)

// Call records one RunCommand invocation seen by a FakeLibrary.
type Call struct {
	Name    string
	Command entities.Command
	Raw     string
	Handle  ports.Handle
}

// Responder produces the raw response for a command.
type Responder func(cmd entities.Command) (string, error)

// FakeLibrary is a scripted ports.Library. Responses are looked up by command
// name ("projects.create"); unscripted commands answer success with null data.
type FakeLibrary struct {
	mu         sync.Mutex
	responders map[string]Responder
	calls      []Call
	next       ports.Handle
	live       map[ports.Handle]string

	InitErr  error
	Closed   bool
	Settings string
}

// NewFakeLibrary returns an empty FakeLibrary.
func NewFakeLibrary() *FakeLibrary {
	return &FakeLibrary{
		responders: make(map[string]Responder),
		live:       make(map[ports.Handle]string),
		next:       0x1000,
	}
}

// On scripts the responder for a command name.
func (f *FakeLibrary) On(name string, r Responder) *FakeLibrary {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responders[name] = r
	return f
}

// OnData scripts a successful response carrying data.
func (f *FakeLibrary) OnData(name string, data any) *FakeLibrary {
	return f.On(name, func(entities.Command) (string, error) {
		return Success(data), nil
	})
}

// OnFailure scripts a success=false response with message.
func (f *FakeLibrary) OnFailure(name, message string) *FakeLibrary {
	return f.On(name, func(entities.Command) (string, error) {
		return Failure(message), nil
	})
}

// Init implements ports.Library.
func (f *FakeLibrary) Init(_ context.Context, settings string) (ports.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InitErr != nil {
		return 0, f.InitErr
	}
	f.next++
	f.live[f.next] = settings
	f.Settings = settings
	return f.next, nil
}

// RunCommand implements ports.Library.
func (f *FakeLibrary) RunCommand(_ context.Context, command string, h ports.Handle) (string, error) {
	var cmd entities.Command
	if err := json.Unmarshal([]byte(command), &cmd); err != nil {
		return "", fmt.Errorf("fake library: bad command: %w", err)
	}
	name := cmd.Name()

	f.mu.Lock()
	if _, ok := f.live[h]; !ok {
		f.mu.Unlock()
		return "", fmt.Errorf("fake library: unknown handle %#x", uintptr(h))
	}
	f.calls = append(f.calls, Call{Name: name, Command: cmd, Raw: command, Handle: h})
	r, ok := f.responders[name]
	f.mu.Unlock()

	if !ok {
		return Success(nil), nil
	}
	return r(cmd)
}

// Free implements ports.Library.
func (f *FakeLibrary) Free(_ context.Context, h ports.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.live[h]; !ok {
		return fmt.Errorf("fake library: double free of %#x", uintptr(h))
	}
	delete(f.live, h)
	return nil
}

// Close implements ports.Library.
func (f *FakeLibrary) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeLibrary) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// LastCall returns the most recent call, or a zero Call when there was none.
func (f *FakeLibrary) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}

// LiveHandles reports how many handles were initialized and not freed.
func (f *FakeLibrary) LiveHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Success renders a success envelope around data.
func Success(data any) string {
	b, _ := json.Marshal(map[string]any{"success": true, "errorMessage": nil, "data": data})
	return string(b)
}

// Failure renders a failure envelope with message.
func Failure(message string) string {
	b, _ := json.Marshal(map[string]any{"success": false, "errorMessage": message, "data": nil})
	return string(b)
}

var _ ports.Library = (*FakeLibrary)(nil)
