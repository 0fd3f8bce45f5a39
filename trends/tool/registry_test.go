package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

func textHandler(text string) Handler {
	return func(_ context.Context, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.TextResult(text), nil
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	def := Definition{Name: "get_latest_trends", Handler: textHandler("ok")}

	if err := reg.Register(def); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := reg.Register(def)
	if !errors.Is(err, contractx.ErrDuplicateTool) {
		t.Fatalf("Register() error = %v, want ErrDuplicateTool", err)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	res := reg.Dispatch(context.Background(), "no_such_tool", nil)

	if !res.IsError {
		t.Fatal("Dispatch() IsError = false, want true")
	}
	if !strings.Contains(res.Text(), "no_such_tool") {
		t.Fatalf("Dispatch() text = %q, want tool name in message", res.Text())
	}
}

func TestDispatchConvertsHandlerError(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	boom := fmt.Errorf("connection reset by peer")
	if err := reg.Register(Definition{
		Name: "failing_tool",
		Handler: func(_ context.Context, _ map[string]any) (contractx.ToolResult, error) {
			return contractx.ToolResult{}, boom
		},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), "failing_tool", nil)
	if !res.IsError {
		t.Fatal("Dispatch() IsError = false, want true")
	}
	if !strings.Contains(res.Text(), "connection reset by peer") {
		t.Fatalf("Dispatch() text = %q, want handler error message", res.Text())
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(Definition{
		Name: "panicking_tool",
		Handler: func(_ context.Context, _ map[string]any) (contractx.ToolResult, error) {
			panic("nil map write")
		},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), "panicking_tool", nil)
	if !res.IsError {
		t.Fatal("Dispatch() IsError = false, want true")
	}
	if !strings.Contains(res.Text(), "nil map write") {
		t.Fatalf("Dispatch() text = %q", res.Text())
	}
}

func TestDispatchPassesSuccessThrough(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(Definition{Name: "echo", Handler: textHandler("payload")}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), "echo", nil)
	if res.IsError {
		t.Fatalf("Dispatch() IsError = true: %s", res.Text())
	}
	if res.Text() != "payload" {
		t.Fatalf("Dispatch() text = %q", res.Text())
	}
}

func TestDefinitionsKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, name := range []string{"first", "second", "third"} {
		if err := reg.Register(Definition{Name: name, Handler: textHandler(name)}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	defs := reg.Definitions()
	if len(defs) != 3 {
		t.Fatalf("Definitions() = %d entries, want 3", len(defs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if defs[i].Name != want {
			t.Fatalf("Definitions()[%d] = %s, want %s", i, defs[i].Name, want)
		}
	}
}
