package contract

import "errors"

var (
	ErrDuplicateTool        = errors.New("tool already registered")
	ErrUnknownTool          = errors.New("unknown tool")
	ErrStoreUnavailable     = errors.New("document store unavailable")
	ErrQuery                = errors.New("store query failed")
	ErrProviderUnconfigured = errors.New("no text-generation provider configured")
	ErrProviderCall         = errors.New("provider call failed")
)
