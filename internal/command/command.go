// Package command exposes named operations that a front-end can call with
// JSON arguments and receive JSON results from.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

var ErrUnknownCommand = errors.New("unknown command")

// Handler runs one command. args is the raw JSON argument object and may be
// empty. The returned value is marshaled to JSON by Invoke.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Registry struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{handlers: make(map[string]Handler), logger: logger}
}

// Register adds h under name, replacing any earlier handler.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	r.logger.Debug("invoke command", "name", name)
	out, err := h(ctx, args)
	if err != nil {
		r.logger.Warn("command failed", "name", name, "error", err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}
	return data, nil
}

// decodeArgs unmarshals args into v. Empty args leave v untouched.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}
