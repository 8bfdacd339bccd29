package row

import (
	"context"

	"github.com/iwvelando/lp-bulk/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Failure records a row whose baseline could not be captured. The row keeps
// its unscaled page content and gets no calculator.
type Failure struct {
	Index int
	Raw   Raw
	Err   error
}

// Outcome is the result of evaluating one row for a multiplier. Index is the
// row's position in the table.
type Outcome struct {
	Index int
	Raw   Raw
	State State
	View  View
	Err   error
}

// Table holds the controllers of every row that captured successfully.
type Table struct {
	Rows     []*Controller
	Failures []Failure

	size   int
	logger *zap.Logger
}

// RendererFactory returns the renderer for the row at index i.
type RendererFactory func(i int, raw Raw) Renderer

// Setup captures every row concurrently. A row that fails to capture is
// recorded in Failures and does not affect the others; only a cancelled
// context fails the whole table.
func Setup(ctx context.Context, logger *zap.Logger, raws []Raw, newRenderer RendererFactory) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	controllers := make([]*Controller, len(raws))
	errs := make([]error, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.DefaultCaptureWorkers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var renderer Renderer
			if newRenderer != nil {
				renderer = newRenderer(i, raw)
			}
			c, err := NewController(logger, raw, renderer)
			if err != nil {
				errs[i] = err
				return nil
			}
			c.index = i
			controllers[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := &Table{size: len(raws), logger: logger}
	for i, raw := range raws {
		if errs[i] != nil {
			logger.Warn("offer row left without calculator",
				zap.String("op", "row.Setup"),
				zap.Int("index", i),
				zap.String("item", raw.Item),
				zap.Error(errs[i]),
			)
			table.Failures = append(table.Failures, Failure{Index: i, Raw: raw, Err: errs[i]})
			continue
		}
		table.Rows = append(table.Rows, controllers[i])
	}

	logger.Debug("offer table captured",
		zap.String("op", "row.Setup"),
		zap.Int("rows", len(table.Rows)),
		zap.Int("failures", len(table.Failures)),
	)
	return table, nil
}

// EvaluateAll computes every row for the same input without rendering.
// Rows are independent, so they are evaluated concurrently. Outcomes follow
// table order and include rows that failed to capture as collapsed with
// their capture error.
func (t *Table) EvaluateAll(ctx context.Context, input string) ([]Outcome, error) {
	outcomes := make([]Outcome, t.size)
	for _, failure := range t.Failures {
		outcomes[failure.Index] = Outcome{Index: failure.Index, Raw: failure.Raw, State: Collapsed, Err: failure.Err}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.DefaultCaptureWorkers)
	for _, c := range t.Rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			view, state, err := c.Evaluate(input)
			outcomes[c.index] = Outcome{Index: c.index, Raw: c.raw, State: state, View: view, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Broadcast delivers the same input to every row's renderer. Errors are
// per-row and keyed by table position.
func (t *Table) Broadcast(input string) map[int]error {
	failed := make(map[int]error)
	for _, c := range t.Rows {
		if err := c.OnInput(input); err != nil {
			t.logger.Debug("row collapsed on broadcast",
				zap.String("op", "row.Broadcast"),
				zap.Int("index", c.index),
				zap.Error(err),
			)
			failed[c.index] = err
		}
	}
	return failed
}
