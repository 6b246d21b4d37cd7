package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/navigation"
)

// Tuning adjusts transition timing and gesture behavior.
type Tuning struct {
	Transition TransitionTuning `yaml:"transition" toml:"transition"`
	Gesture    GestureTuning    `yaml:"gesture" toml:"gesture"`
}

// TransitionTuning configures every transition of a run.
type TransitionTuning struct {
	// Duration of timed transitions; zero means the default 250ms.
	Duration Duration `yaml:"duration" toml:"duration"`
	// Curve names the easing curve, see animation.CurveByName.
	Curve string `yaml:"curve" toml:"curve"`
	// Spring replaces the timed tween with a spring when set.
	Spring *SpringTuning `yaml:"spring" toml:"spring"`
}

// SpringTuning are the physical spring parameters.
type SpringTuning struct {
	Stiffness float64 `yaml:"stiffness" toml:"stiffness"`
	Damping   float64 `yaml:"damping" toml:"damping"`
	Mass      float64 `yaml:"mass" toml:"mass"`
}

// GestureTuning configures the swipe-back interpreter.
type GestureTuning struct {
	// Enabled defaults to true.
	Enabled          *bool            `yaml:"enabled" toml:"enabled"`
	Direction        string           `yaml:"direction" toml:"direction"`
	ResponseDistance ResponseDistance `yaml:"response_distance" toml:"response_distance"`
	RTL              bool             `yaml:"rtl" toml:"rtl"`
	// Locale is a BCP 47 tag; a right-to-left script implies RTL.
	Locale           string           `yaml:"locale" toml:"locale"`
	Vertical         bool             `yaml:"vertical" toml:"vertical"`
}

var rtlScripts = map[string]bool{
	"Adlm": true, "Arab": true, "Hebr": true, "Mand": true, "Nkoo": true,
	"Rohg": true, "Samr": true, "Syrc": true, "Thaa": true,
}

// IsRTLLocale reports whether tag is written in a right-to-left script.
func IsRTLLocale(tag string) (bool, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return false, err
	}
	script, _ := t.Script()
	return rtlScripts[script.String()], nil
}

// ResponseDistance is the edge band, in pixels, per axis.
type ResponseDistance struct {
	Horizontal float64 `yaml:"horizontal" toml:"horizontal"`
	Vertical   float64 `yaml:"vertical" toml:"vertical"`
}

// Validate reports the first invalid tuning value.
func (t *Tuning) Validate() error {
	if _, err := t.Transition.Spec(); err != nil {
		return err
	}
	_, err := t.Gesture.Config()
	return err
}

// Spec converts the tuning to a transition spec.
func (t TransitionTuning) Spec() (navigation.TransitionSpec, error) {
	spec := navigation.DefaultTransitionSpec()
	if t.Duration > 0 {
		spec.Duration = t.Duration.Std()
	}
	curve, err := animation.CurveByName(t.Curve)
	if err != nil {
		return spec, fmt.Errorf("transition.curve: %w", err)
	}
	spec.Curve = curve
	if s := t.Spring; s != nil {
		if s.Stiffness <= 0 || s.Mass < 0 || s.Damping < 0 {
			return spec, fmt.Errorf("transition.spring: stiffness must be positive, mass and damping non-negative")
		}
		spec.Spring = true
		spec.SpringParams = animation.SpringDescription{
			Mass:      s.Mass,
			Stiffness: s.Stiffness,
			Damping:   s.Damping,
		}
	}
	return spec, nil
}

// Config converts the tuning to an interpreter configuration.
func (g GestureTuning) Config() (navigation.GestureConfig, error) {
	cfg := navigation.GestureConfig{
		Disabled: g.Enabled != nil && !*g.Enabled,
		RTL:      g.RTL,
		Vertical: g.Vertical,
		ResponseDistance: navigation.ResponseDistance{
			Horizontal: g.ResponseDistance.Horizontal,
			Vertical:   g.ResponseDistance.Vertical,
		},
	}
	switch strings.ToLower(strings.TrimSpace(g.Direction)) {
	case "", "normal":
		cfg.Direction = navigation.GestureNormal
	case "inverted":
		cfg.Direction = navigation.GestureInverted
	default:
		return cfg, fmt.Errorf("gesture.direction: unknown direction %q (want normal or inverted)", g.Direction)
	}
	if g.Locale != "" {
		rtl, err := IsRTLLocale(g.Locale)
		if err != nil {
			return cfg, fmt.Errorf("gesture.locale: %w", err)
		}
		cfg.RTL = cfg.RTL || rtl
	}
	if g.ResponseDistance.Horizontal < 0 || g.ResponseDistance.Vertical < 0 {
		return cfg, fmt.Errorf("gesture.response_distance: must not be negative")
	}
	return cfg, nil
}
