package navigation

import (
	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/engine"
	"github.com/go-drift/cardstack/pkg/errors"
	"github.com/go-drift/cardstack/pkg/rendering"
)

// sequencerState is either idleState or runningState.
type sequencerState interface {
	isSequencerState()
}

type idleState struct{}

// runningState holds the transition being animated and at most one queued
// follow-up. A newer request replaces the queued one.
type runningState struct {
	current *transition
	queued  *transition
}

func (idleState) isSequencerState()    {}
func (runningState) isSequencerState() {}

// transition is one logical move from the settled scene list to a new one.
type transition struct {
	from      []*Scene
	to        []*Scene
	stack     *Stack
	prevStack *Stack

	indexHasChanged bool
	keyHasChanged   bool
	isFlip          bool
	// positionHasChanged is computed when the transition starts.
	positionHasChanged bool
}

// Transitioner drives the position and progress values between stack
// snapshots.
//
// All methods must be called from the goroutine that steps the frame loop.
// Animation completions and awaited hook results are delivered there too.
type Transitioner struct {
	opts     TransitionerOptions
	dispatch Dispatcher

	stack    *Stack
	layout   *Layout
	position *animation.Value
	progress *animation.Value
	scenes   []*Scene

	props     TransitionProps
	prevProps *TransitionProps

	state     sequencerState
	flipPhase FlipPhase
	closed    bool
}

// NewTransitioner creates a settled transitioner showing stack.
func NewTransitioner(stack *Stack, opts TransitionerOptions) (*Transitioner, error) {
	if err := validateStack("navigation.NewTransitioner", stack); err != nil {
		return nil, err
	}
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = engine.Default()
	}
	t := &Transitioner{
		opts:     opts,
		dispatch: dispatch,
		stack:    stack,
		layout:   NewLayout(),
		position: animation.NewValue(float64(stack.Index)),
		progress: animation.NewValue(1),
		scenes:   Reconcile(nil, stack, nil),
		state:    idleState{},
	}
	t.props = t.buildProps(stack)
	return t, nil
}

func validateStack(op string, stack *Stack) error {
	if stack.Valid() {
		return nil
	}
	return &errors.NavError{Op: op, Kind: errors.KindInput, Err: errors.ErrInvalidStack}
}

// Update hands the transitioner a new stack snapshot.
//
// If the reconciled scene list is unchanged nothing happens. If a transition
// is already animating the snapshot is queued, replacing any snapshot queued
// before it. Update never blocks; completion is observed through the hooks
// or IsTransitioning.
func (t *Transitioner) Update(next *Stack) error {
	if err := validateStack("navigation.Transitioner.Update", next); err != nil {
		return err
	}
	if t.closed {
		return nil
	}
	prevStack := t.stack
	t.stack = next

	nextScenes := Reconcile(t.scenes, next, prevStack)
	if SameScenes(nextScenes, t.scenes) {
		return nil
	}

	indexHasChanged := next.Index != prevStack.Index
	keyHasChanged := next.Top().Key != prevStack.Top().Key

	if indexHasChanged && !keyHasChanged {
		// Routes beneath the top were removed; nothing visible moves.
		t.scenes = ScenesFromStack(next)
		t.props = t.buildProps(next)
		if _, running := t.state.(runningState); !running {
			t.position.SetValue(float64(next.Index))
		}
		return nil
	}

	tr := &transition{
		from:            t.scenes,
		to:              nextScenes,
		stack:           next,
		prevStack:       prevStack,
		indexHasChanged: indexHasChanged,
		keyHasChanged:   keyHasChanged,
		isFlip:          next.Flip,
	}

	if running, ok := t.state.(runningState); ok {
		running.queued = tr
		t.state = running
		return nil
	}
	t.start(tr)
	return nil
}

func (t *Transitioner) start(tr *transition) {
	t.progress.SetValue(0)
	t.scenes = tr.to

	prev := t.props
	t.prevProps = &prev
	t.props = t.buildProps(tr.stack)

	spec := DefaultTransitionSpec()
	if t.opts.ConfigureTransition != nil {
		spec = t.opts.ConfigureTransition(t.props, prev)
	}
	tr.positionHasChanged = t.position.Value() != float64(tr.stack.Index)

	t.state = runningState{current: tr}

	var pending Awaitable
	if t.opts.OnTransitionStart != nil {
		pending = t.opts.OnTransitionStart(t.props, prev)
	}
	t.await(pending, "OnTransitionStart", func() {
		if tr.isFlip {
			t.runFlip(tr, spec.driver())
			return
		}
		t.runRegular(tr, spec.driver())
	})
}

func (t *Transitioner) runRegular(tr *transition, driver animation.Driver) {
	var anims []animation.Animation
	if tr.indexHasChanged || tr.keyHasChanged {
		anims = append(anims, t.progress.To(1, driver))
		if tr.positionHasChanged {
			anims = append(anims, t.position.To(float64(tr.stack.Index), driver))
		}
	}
	animation.Parallel(anims...)(func(bool) {
		t.complete()
	})
}

// complete purges stale scenes, awaits OnTransitionEnd, and then either
// starts the queued transition or goes idle.
func (t *Transitioner) complete() {
	if t.closed {
		return
	}
	t.progress.SetValue(1)

	var prev TransitionProps
	if t.prevProps != nil {
		prev = *t.prevProps
	}
	t.prevProps = nil

	t.scenes = withoutStale(t.scenes)
	t.props = t.buildProps(t.stack)

	var pending Awaitable
	if t.opts.OnTransitionEnd != nil {
		pending = t.opts.OnTransitionEnd(t.props, prev)
	}
	t.await(pending, "OnTransitionEnd", func() {
		running, ok := t.state.(runningState)
		if ok && running.queued != nil {
			t.start(running.queued)
			return
		}
		t.state = idleState{}
	})
}

// await runs next once pending resolves. A failed hook is reported and the
// sequencer is left where it was.
func (t *Transitioner) await(pending Awaitable, hook string, next func()) {
	if pending == nil {
		next()
		return
	}
	key := t.props.Scene.Key
	t.dispatch.Await(pending, func(err error) {
		if t.closed {
			return
		}
		if err != nil {
			errors.Report(&errors.NavError{
				Op:   "navigation.Transitioner." + hook,
				Kind: errors.KindHook,
				Key:  key,
				Err:  err,
			})
			return
		}
		next()
	})
}

func (t *Transitioner) buildProps(stack *Stack) TransitionProps {
	scene := activeScene(t.scenes)
	return TransitionProps{
		Layout:   t.layout,
		Stack:    stack,
		Position: t.position,
		Progress: t.progress,
		Scenes:   t.scenes,
		Scene:    scene,
		Index:    scene.Index,
	}
}

// OnLayout records a container measurement. Repeated sizes are ignored.
func (t *Transitioner) OnLayout(size rendering.Size) {
	if !t.layout.measure(size) {
		return
	}
	t.props = t.buildProps(t.stack)
}

// Close halts both values and drops any pending continuation.
func (t *Transitioner) Close() {
	t.closed = true
	t.position.Stop()
	t.progress.Stop()
}

// Position is the animated stack position, spanning settled indices.
func (t *Transitioner) Position() *animation.Value { return t.position }

// Progress runs from 0 to 1 over each transition.
func (t *Transitioner) Progress() *animation.Value { return t.progress }

// Layout returns the measured container layout.
func (t *Transitioner) Layout() *Layout { return t.layout }

// Stack returns the most recent snapshot passed to Update.
func (t *Transitioner) Stack() *Stack { return t.stack }

// Scenes returns the current scene list.
func (t *Transitioner) Scenes() []*Scene { return t.scenes }

// Props returns the props of the current or last transition.
func (t *Transitioner) Props() TransitionProps { return t.props }

// PrevProps returns the outgoing props while a transition runs.
func (t *Transitioner) PrevProps() (TransitionProps, bool) {
	if t.prevProps == nil {
		return TransitionProps{}, false
	}
	return *t.prevProps, true
}

// IsTransitioning reports whether a transition is running.
func (t *Transitioner) IsTransitioning() bool {
	_, running := t.state.(runningState)
	return running
}

// HasQueued reports whether a transition is waiting for the running one.
func (t *Transitioner) HasQueued() bool {
	running, ok := t.state.(runningState)
	return ok && running.queued != nil
}

// FlipPhase reports which half of a flip is animating.
func (t *Transitioner) FlipPhase() FlipPhase { return t.flipPhase }
