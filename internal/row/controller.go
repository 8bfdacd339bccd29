package row

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/iwvelando/lp-bulk/internal/scaling"
	"go.uber.org/zap"
)

// ErrSuperseded is reported by Submit when a newer input arrived before the
// computation finished. The stale result is discarded.
var ErrSuperseded = errors.New("superseded by a newer multiplier")

// Controller owns one offer row. Its baseline is captured once and never
// changes; every input recomputes from it.
type Controller struct {
	index    int
	raw      Raw
	baseline scaling.Baseline
	renderer Renderer
	logger   *zap.Logger

	generation atomic.Uint64

	mu    sync.Mutex
	state State
}

// NewController captures the row's baseline and starts it collapsed. A nil
// renderer discards display updates.
func NewController(logger *zap.Logger, raw Raw, renderer Renderer) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}

	baseline, err := Capture(raw)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		raw:      raw,
		baseline: baseline,
		renderer: renderer,
		logger:   logger.With(zap.String("item", raw.Item)),
		state:    Collapsed,
	}
	renderer.Collapse()
	return c, nil
}

// Index returns the row's position in its table.
func (c *Controller) Index() int {
	return c.index
}

// Raw returns the text fields the row was captured from.
func (c *Controller) Raw() Raw {
	return c.raw
}

// Baseline returns the captured baseline.
func (c *Controller) Baseline() scaling.Baseline {
	return c.baseline
}

// State returns the row's current display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Evaluate computes the display values for an input without rendering them.
// A collapsing input yields the zero View and no computation happens.
func (c *Controller) Evaluate(input string) (View, State, error) {
	k, state := ParseMultiplier(input)
	if state == Collapsed {
		return View{}, Collapsed, nil
	}

	result, err := scaling.Scale(c.baseline, k)
	if err != nil {
		return View{}, Collapsed, err
	}
	return NewView(result, c.baseline.HasRequirements()), Expanded, nil
}

// OnInput handles one multiplier change synchronously. A scaling error
// collapses this row only and is returned to the caller.
func (c *Controller) OnInput(input string) error {
	gen := c.generation.Add(1)
	view, state, err := c.Evaluate(input)
	return c.apply(gen, view, state, err)
}

// Submit handles a multiplier change in the background. Only the most recent
// submission is rendered; older ones resolve to ErrSuperseded, as do
// submissions whose context ends first. The returned channel receives exactly
// one value.
func (c *Controller) Submit(ctx context.Context, input string) <-chan error {
	gen := c.generation.Add(1)
	done := make(chan error, 1)

	go func() {
		defer close(done)

		view, state, err := c.Evaluate(input)
		if ctx.Err() != nil {
			done <- ErrSuperseded
			return
		}
		done <- c.apply(gen, view, state, err)
	}()

	return done
}

func (c *Controller) apply(gen uint64, view View, state State, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation.Load() != gen {
		c.logger.Debug("discarding stale multiplier result",
			zap.String("op", "row.apply"),
			zap.Uint64("generation", gen),
		)
		return ErrSuperseded
	}

	if err != nil {
		c.logger.Warn("failed to scale offer, collapsing row",
			zap.String("op", "row.apply"),
			zap.Error(err),
		)
		c.state = Collapsed
		c.renderer.Collapse()
		return err
	}

	c.state = state
	if state == Collapsed {
		c.renderer.Collapse()
		return nil
	}

	c.logger.Debug("rendered scaled offer",
		zap.String("op", "row.apply"),
		zap.Int("multiplier", view.Multiplier),
		zap.Float64("profit", view.Profit),
	)
	c.renderer.Render(view)
	return nil
}
