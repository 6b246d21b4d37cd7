// Package config loads navsim scenario and tuning files.
//
// Files are YAML (.yaml, .yml) or TOML (.toml), picked by extension. Unknown
// keys are rejected in both formats so a typo in a tuning key never silently
// falls back to a default.
package config

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cardstack/pkg/errors"
)

// Default viewport used when a scenario does not set one.
const (
	DefaultWidth  = 390
	DefaultHeight = 844
)

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

// UnmarshalText parses a duration string. TOML decoding uses it.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %s", v)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string like \"250ms\"", n.Line)
	}
	return d.UnmarshalText([]byte(n.Value))
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Scenario is a scripted navigation session.
type Scenario struct {
	Name   string   `yaml:"name" toml:"name"`
	// Routes are the names of the initial routes, bottom first.
	Routes []string `yaml:"routes" toml:"routes"`
	Layout Size     `yaml:"layout" toml:"layout"`
	Tuning Tuning   `yaml:"tuning" toml:"tuning"`
	Steps  []Step   `yaml:"steps" toml:"steps"`
}

// Size is a viewport in logical pixels.
type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Step actions.
const (
	ActionPush     = "push"
	ActionPop      = "pop"
	ActionReplace  = "replace"
	ActionBack     = "back"
	ActionFlip     = "flip"
	ActionFlipBack = "flip_back"
	ActionSwipe    = "swipe"
	ActionLayout   = "layout"
	ActionWait     = "wait"
)

// Step is one scripted host action.
type Step struct {
	Action   string   `yaml:"action" toml:"action"`
	// Route names the pushed, replacing or flipped-to route.
	Route    string   `yaml:"route" toml:"route"`
	// Modal pushes a card that animates from the bottom.
	Modal    bool     `yaml:"modal" toml:"modal"`
	// To names the route a back action returns to; empty pops once.
	To       string   `yaml:"to" toml:"to"`
	// Distance and Velocity (px/ms) describe a swipe along the gesture axis.
	Distance float64  `yaml:"distance" toml:"distance"`
	Velocity float64  `yaml:"velocity" toml:"velocity"`
	// Width and Height are the new viewport of a layout step.
	Width    float64  `yaml:"width" toml:"width"`
	Height   float64  `yaml:"height" toml:"height"`
	// Duration is how long a wait step advances the clock.
	Duration Duration `yaml:"duration" toml:"duration"`
	// NoSettle starts the next step without waiting for animations to end.
	NoSettle bool     `yaml:"no_settle" toml:"no_settle"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	var sc Scenario
	if err := decodeFile(path, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, configError(path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if sc.Layout.Width == 0 && sc.Layout.Height == 0 {
		sc.Layout = Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	return &sc, nil
}

// LoadTuning reads a standalone tuning file.
func LoadTuning(path string) (*Tuning, error) {
	var t Tuning
	if err := decodeFile(path, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, configError(path, err)
	}
	return &t, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return configError(path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !goerrors.Is(err, io.EOF) {
			return configError(path, fmt.Errorf("parse yaml: %w", err))
		}
	case ".toml":
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return configError(path, fmt.Errorf("parse toml: %w", err))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return configError(path, fmt.Errorf("unknown keys: %v", undecoded))
		}
	default:
		return configError(path, fmt.Errorf("unsupported file type %q (want .yaml, .yml or .toml)", ext))
	}
	return nil
}

func configError(path string, err error) error {
	return &errors.NavError{
		Op:        "config.Load",
		Kind:      errors.KindConfig,
		Err:       fmt.Errorf("%s: %w", path, err),
		Timestamp: time.Now(),
	}
}

// Validate checks the scenario for missing or contradictory fields.
func (sc *Scenario) Validate() error {
	if len(sc.Routes) == 0 {
		return fmt.Errorf("routes: at least one initial route is required")
	}
	for i, name := range sc.Routes {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("routes[%d]: empty route name", i)
		}
	}
	if sc.Layout.Width < 0 || sc.Layout.Height < 0 {
		return fmt.Errorf("layout: negative size %vx%v", sc.Layout.Width, sc.Layout.Height)
	}
	if err := sc.Tuning.Validate(); err != nil {
		return err
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Action {
	case ActionPush, ActionReplace, ActionFlip:
		if st.Route == "" {
			return fmt.Errorf("%s needs a route", st.Action)
		}
	case ActionPop, ActionBack, ActionFlipBack:
	case ActionSwipe:
		if st.Distance <= 0 {
			return fmt.Errorf("swipe needs a positive distance")
		}
	case ActionLayout:
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("layout needs a positive width and height")
		}
	case ActionWait:
		if st.Duration <= 0 {
			return fmt.Errorf("wait needs a duration")
		}
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}
