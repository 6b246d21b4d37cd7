package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-drift/cardstack/cmd/navsim/internal/config"
	"github.com/go-drift/cardstack/cmd/navsim/internal/stack"
	"github.com/go-drift/cardstack/pkg/errors"
	"github.com/go-drift/cardstack/pkg/navigation"
	"github.com/go-drift/cardstack/pkg/rendering"
	cardtest "github.com/go-drift/cardstack/pkg/testing"
)

// edgeInset is how far from the leading edge a simulated swipe starts.
const edgeInset = 5

// simulator replays a scenario against a transitioner on a virtual clock.
type simulator struct {
	logger *log.Logger
	sc     *config.Scenario
	settle time.Duration

	tester      *cardtest.Tester
	host        *stack.Host
	tr          *navigation.Transitioner
	gesture     *navigation.GestureInterpreter
	gestureCfg  navigation.GestureConfig
	prevHandler errors.ErrorHandler
	unlisten    func()

	transitions int
	goBacks     int
}

func newSimulator(logger *log.Logger, sc *config.Scenario, settle time.Duration) (*simulator, error) {
	spec, err := sc.Tuning.Transition.Spec()
	if err != nil {
		return nil, err
	}
	gestureCfg, err := sc.Tuning.Gesture.Config()
	if err != nil {
		return nil, err
	}
	host, err := stack.New(sc.Routes)
	if err != nil {
		return nil, err
	}

	s := &simulator{
		logger:     logger,
		sc:         sc,
		settle:     settle,
		tester:     cardtest.NewTester(),
		host:       host,
		gestureCfg: gestureCfg,
	}
	s.prevHandler = errors.SetHandler(errors.NewLogHandlerWithLogger(logger))

	s.tr, err = navigation.NewTransitioner(host.Stack(), navigation.TransitionerOptions{
		ConfigureTransition: func(next, prev navigation.TransitionProps) navigation.TransitionSpec {
			return spec
		},
		OnTransitionStart: s.onTransitionStart,
		OnTransitionEnd:   s.onTransitionEnd,
		OnFlipStart:       func() { logger.Info("flip started") },
		OnFlipFromComplete: func() {
			logger.Info("flip halfway", "position", s.tr.Position().Value())
		},
		OnFlipToComplete: func() { logger.Info("flip finished") },
		Dispatch:         s.tester.Loop(),
	})
	if err != nil {
		s.close()
		return nil, err
	}

	s.unlisten = s.tr.Position().AddListener(func(v float64) {
		logger.Debug("frame", "position", fmt.Sprintf("%.3f", v), "progress", fmt.Sprintf("%.3f", s.tr.Progress().Value()))
	})

	s.gesture = navigation.NewGestureInterpreter(s.tr, gestureCfg)
	s.gesture.OnGoBack = s.onGoBack

	s.tr.OnLayout(rendering.Size{Width: sc.Layout.Width, Height: sc.Layout.Height})
	return s, nil
}

func (s *simulator) close() {
	if s.unlisten != nil {
		s.unlisten()
	}
	if s.tr != nil {
		s.tr.Close()
	}
	errors.SetHandler(s.prevHandler)
	s.tester.Cleanup()
}

func sceneName(p navigation.TransitionProps) string {
	if p.Scene == nil {
		return ""
	}
	return p.Scene.Route.Name
}

func (s *simulator) onTransitionStart(next, prev navigation.TransitionProps) navigation.Awaitable {
	s.transitions++
	s.logger.Info("transition started", "from", sceneName(prev), "to", sceneName(next), "index", next.Index, "flip", next.Stack.Flip)
	return nil
}

func (s *simulator) onTransitionEnd(next, prev navigation.TransitionProps) navigation.Awaitable {
	s.logger.Info("transition finished", "scene", sceneName(next), "scenes", len(next.Scenes))
	return nil
}

func (s *simulator) onGoBack(key string) {
	next, ok := s.host.Back(key)
	if !ok {
		s.logger.Warn("go back ignored", "key", key)
		return
	}
	s.goBacks++
	s.logger.Info("swiped back", "to", next.Top().Name)
	s.update(next)
}

func (s *simulator) update(next *navigation.Stack) {
	if err := s.tr.Update(next); err != nil {
		s.logger.Error("update rejected", "err", err)
	}
}

func (s *simulator) run(ctx context.Context) error {
	s.logger.Info("scenario", "name", s.sc.Name, "routes", strings.Join(s.sc.Routes, ","), "steps", len(s.sc.Steps))
	if err := s.tester.PumpAndSettle(s.settle); err != nil {
		return err
	}
	for i, st := range s.sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Debug("step", "n", i, "action", st.Action)
		s.apply(st)
		if st.NoSettle {
			s.tester.Pump()
			continue
		}
		if err := s.tester.PumpAndSettle(s.settle); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return s.tester.PumpAndSettle(s.settle)
}

func (s *simulator) apply(st config.Step) {
	switch st.Action {
	case config.ActionPush:
		s.update(s.host.Push(st.Route, st.Modal))
	case config.ActionReplace:
		s.update(s.host.Replace(st.Route, st.Modal))
	case config.ActionFlip:
		s.update(s.host.Flip(st.Route))
	case config.ActionPop:
		s.updateIf(s.host.Pop())
	case config.ActionFlipBack:
		s.updateIf(s.host.FlipBack())
	case config.ActionBack:
		if st.To == "" {
			s.updateIf(s.host.Pop())
		} else {
			s.updateIf(s.host.BackTo(st.To))
		}
	case config.ActionSwipe:
		s.swipe(st)
	case config.ActionLayout:
		s.tr.OnLayout(rendering.Size{Width: st.Width, Height: st.Height})
	case config.ActionWait:
		s.tester.PumpFor(st.Duration.Std())
	}
}

func (s *simulator) updateIf(next *navigation.Stack, ok bool) {
	if !ok {
		s.logger.Warn("nothing to go back to")
		return
	}
	s.update(next)
}

// swipe drags the active card from its leading edge the way a user going
// back would, honoring RTL, inverted and vertical configurations.
func (s *simulator) swipe(st config.Step) {
	var active *navigation.Scene
	for _, sc := range s.tr.Scenes() {
		if sc.IsActive {
			active = sc
		}
	}
	cfg := s.gestureCfg
	vertical := cfg.Vertical || active.Route.AnimateFromBottom
	inverted := cfg.Direction == navigation.GestureInverted
	rtl := cfg.RTL && !vertical

	size := s.tr.Layout().Size()
	axis := size.Axis(vertical)
	edge := float64(edgeInset)
	if inverted != rtl {
		edge = axis - edgeInset
	}
	sign := 1.0
	if inverted != rtl {
		sign = -1
	}

	var start, delta, velocity rendering.Offset
	if vertical {
		start = rendering.Offset{X: size.Width / 2, Y: edge}
		delta = rendering.Offset{Y: sign * st.Distance}
		velocity = rendering.Offset{Y: sign * st.Velocity}
	} else {
		start = rendering.Offset{X: edge, Y: size.Height / 2}
		delta = rendering.Offset{X: sign * st.Distance}
		velocity = rendering.Offset{X: sign * st.Velocity}
	}

	if !s.tester.Drag(s.gesture, active, start, delta, velocity) {
		s.logger.Warn("swipe rejected", "scene", active.Route.Name)
		return
	}
	s.logger.Info("swipe released", "scene", active.Route.Name, "position", fmt.Sprintf("%.3f", s.tr.Position().Value()))
}

// report prints the outcome of the run.
func (s *simulator) report(w io.Writer) error {
	routes := s.host.Stack().Routes
	names := make([]string, len(routes))
	for i, r := range routes {
		names[i] = r.Name
	}
	_, err := fmt.Fprintf(w, "scenario: %s\nfinal stack: %s\ntransitions: %d\nswipes committed: %d\nframes: %d\n",
		s.sc.Name, strings.Join(names, " > "), s.transitions, s.goBacks, s.tester.Loop().Frames())
	return err
}
