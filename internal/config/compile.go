package config

import (
	"fmt"
	"log/slog"

	"github.com/dshills/graphview/internal/behavior"
	"github.com/dshills/graphview/internal/script"
	"github.com/dshills/graphview/internal/shortcut"
)

// Compiled is a File turned into behavior specs. It owns the Lua
// predicates its specs reference; Close them once no behavior uses them.
type Compiled struct {
	Specs []behavior.Spec

	predicates []*script.Predicate
}

// Close releases the compiled predicates.
func (c *Compiled) Close() {
	if c == nil {
		return
	}
	for _, p := range c.predicates {
		p.Close()
	}
	c.predicates = nil
}

// Compile converts the behaviors of f into specs. Lua enable predicates
// are compiled here; predicates log failures to logger (nil means
// slog.Default). Entries of unknown types pass through with their
// BehaviorConfig as options, for the registry to accept or reject.
func Compile(f *File, logger *slog.Logger) (*Compiled, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Compiled{Specs: make([]behavior.Spec, 0, len(f.Behaviors))}
	for i, b := range f.Behaviors {
		spec := behavior.Spec{Type: b.Type, Key: b.Key, Options: b}
		if b.Type == behavior.TypeScrollCanvas {
			opts, err := c.scrollCanvasOptions(b, logger)
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("behaviors[%d]: %w", i, err)
			}
			spec.Options = opts
		}
		c.Specs = append(c.Specs, spec)
	}
	return c, nil
}

func (c *Compiled) scrollCanvasOptions(b BehaviorConfig, logger *slog.Logger) (behavior.ScrollCanvasOptions, error) {
	opts := behavior.ScrollCanvasOptions{
		Key:         b.Key,
		Direction:   behavior.Direction(b.Direction),
		Sensitivity: b.Sensitivity,
	}

	enable, err := c.enable(b.Enable, logger)
	if err != nil {
		return opts, err
	}
	opts.Enable = enable

	if t := b.Trigger; t != nil {
		opts.Trigger = &behavior.CombinationKey{
			Up:    toKeys(t.Up),
			Down:  toKeys(t.Down),
			Left:  toKeys(t.Left),
			Right: toKeys(t.Right),
		}
	}
	return opts, nil
}

func (c *Compiled) enable(v any, logger *slog.Logger) (behavior.Enable, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return behavior.EnableBool(e), nil
	case string:
		p, err := script.Compile(e, script.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("enable: %w", err)
		}
		c.predicates = append(c.predicates, p)
		return behavior.EnablePredicate(p.Func()), nil
	default:
		return nil, &ValidationError{Field: "enable", Value: v, Message: "must be a boolean or a Lua predicate"}
	}
}

func toKeys(names []string) []shortcut.Key {
	if names == nil {
		return nil
	}
	keys := make([]shortcut.Key, len(names))
	for i, n := range names {
		keys[i] = shortcut.Key(n)
	}
	return keys
}
