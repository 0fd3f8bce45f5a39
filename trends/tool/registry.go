package tool

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

// Handler executes one tool invocation. A returned error is converted to an
// error envelope at the dispatch boundary; handlers shape their own success
// output.
type Handler func(ctx context.Context, args map[string]any) (contractx.ToolResult, error)

type ParamType string

const (
	ParamString ParamType = "string"
	ParamNumber ParamType = "number"
)

// Param describes one input parameter for transport adapters to declare.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Definition binds a tool name to its schema metadata and handler.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Registry owns the name-to-handler mapping and the per-call error boundary.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Definition),
	}
}

func (r *Registry) Register(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %s has no handler", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", contractx.ErrDuplicateTool, name)
	}
	def.Name = name
	r.tools[name] = def
	r.order = append(r.order, name)
	return nil
}

// Definitions returns registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Dispatch executes the named tool exactly once. Any handler failure, thrown
// or panicked, becomes an error envelope; Dispatch itself never fails.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result contractx.ToolResult) {
	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return contractx.ErrorResult(fmt.Sprintf("%s: %q", contractx.ErrUnknownTool, name))
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("tool", name).Interface("panic", rec).Msg("tool handler panicked")
			result = contractx.ErrorResult(fmt.Sprintf("tool %s failed: %v", name, rec))
		}
	}()

	out, err := def.Handler(ctx, args)
	if err != nil {
		log.Warn().Str("tool", name).Err(err).Msg("tool call failed")
		return contractx.ErrorResult(err.Error())
	}
	return out
}
