package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// File is a parsed configuration file.
type File struct {
	Graph     GraphConfig      `toml:"graph"`
	Terminal  TerminalConfig   `toml:"terminal"`
	Behaviors []BehaviorConfig `toml:"behaviors"`
}

// GraphConfig configures the runtime graph.
type GraphConfig struct {
	// Animation is a duration string such as "120ms". Empty disables
	// animated translation.
	Animation string `toml:"animation"`
}

// AnimationDuration parses Animation. Empty means zero.
func (g GraphConfig) AnimationDuration() (time.Duration, error) {
	if g.Animation == "" {
		return 0, nil
	}
	return time.ParseDuration(g.Animation)
}

// TerminalConfig configures the terminal surface.
type TerminalConfig struct {
	// WheelStep is the wheel delta of one wheel tick. Zero uses the
	// surface default.
	WheelStep float64 `toml:"wheel_step"`
}

// BehaviorConfig is one [[behaviors]] entry.
type BehaviorConfig struct {
	Type        string         `toml:"type"`
	Key         string         `toml:"key"`
	Direction   string         `toml:"direction"`
	Sensitivity *float64       `toml:"sensitivity"`
	Enable      any            `toml:"enable"`
	Trigger     *TriggerConfig `toml:"trigger"`
}

// TriggerConfig maps pan directions to key combinations.
type TriggerConfig struct {
	Up    []string `toml:"up"`
	Down  []string `toml:"down"`
	Left  []string `toml:"left"`
	Right []string `toml:"right"`
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses TOML data. source names the data in errors. Unknown fields
// are rejected.
func Parse(source string, data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, newParseError(source, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &f, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var de *toml.DecodeError
	var sme *toml.StrictMissingError
	switch {
	case errors.As(err, &de):
		pe.Line, pe.Column = de.Position()
	case errors.As(err, &sme) && len(sme.Errors) > 0:
		pe.Line, pe.Column = sme.Errors[0].Position()
		pe.Message = "unknown field: " + sme.Errors[0].Error()
	}
	return pe
}

// Validate checks field values. It does not compile Lua predicates.
func (f *File) Validate() error {
	if len(f.Behaviors) == 0 {
		return ErrNoBehaviors
	}
	if _, err := f.Graph.AnimationDuration(); err != nil {
		return &ValidationError{Field: "graph.animation", Value: f.Graph.Animation, Message: "not a duration"}
	}
	if f.Terminal.WheelStep < 0 {
		return &ValidationError{Field: "terminal.wheel_step", Value: f.Terminal.WheelStep, Message: "must not be negative"}
	}

	var errs []error
	keys := make(map[string]int)
	for i, b := range f.Behaviors {
		field := func(name string) string {
			return fmt.Sprintf("behaviors[%d].%s", i, name)
		}
		if b.Type == "" {
			errs = append(errs, &ValidationError{Field: field("type"), Value: `""`, Message: "required"})
		}
		if b.Key != "" {
			if j, dup := keys[b.Key]; dup {
				errs = append(errs, &ValidationError{Field: field("key"), Value: b.Key, Message: fmt.Sprintf("duplicates behaviors[%d]", j)})
			}
			keys[b.Key] = i
		}
		switch b.Direction {
		case "", "x", "y":
		default:
			errs = append(errs, &ValidationError{Field: field("direction"), Value: b.Direction, Message: `must be "", "x" or "y"`})
		}
		if s := b.Sensitivity; s != nil && (math.IsNaN(*s) || math.IsInf(*s, 0)) {
			errs = append(errs, &ValidationError{Field: field("sensitivity"), Value: *s, Message: "must be finite"})
		}
		switch b.Enable.(type) {
		case nil, bool, string:
		default:
			errs = append(errs, &ValidationError{Field: field("enable"), Value: b.Enable, Message: "must be a boolean or a Lua predicate"})
		}
	}
	return errors.Join(errs...)
}
