package tool

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Tool-wide knobs shared by both tools.
type Config struct {
	// CallTimeout bounds every external call a tool makes.
	CallTimeout time.Duration `split_words:"true" default:"30s"`
	// ContextWindow restricts ask_trends to chunks no older than this.
	// Zero disables the restriction.
	ContextWindow time.Duration `split_words:"true" default:"336h"`
	// MaxContextBytes caps the concatenated chunk context.
	MaxContextBytes int `split_words:"true" default:"24576"`
}

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func numberArg(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// limitArg coerces a string-or-number limit, falling back to def when absent
// or non-numeric and silently clamping into [min, max].
func limitArg(args map[string]any, key string, def, min, max int) int {
	f, ok := numberArg(args, key)
	if !ok {
		return def
	}
	limit := int(f)
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
