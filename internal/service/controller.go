package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stockfolio/internal/database"
	"stockfolio/internal/models"
)

// State names the controller's position in the add/edit/delete/refresh
// lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateError      State = "error"
)

// HoldingsStore is the slice of the persistence layer the controller drives.
type HoldingsStore interface {
	List(ctx context.Context) ([]database.Holding, error)
	Create(ctx context.Context, symbol string, shares decimal.Decimal) error
	Update(ctx context.Context, symbol string, shares decimal.Decimal) error
	Delete(ctx context.Context, symbol string) error
}

// Controller drives one portfolio's valuation lifecycle. The consistency
// model is refetch-after-mutation: every successful create, update or delete
// is followed by a full refresh, and the store's list is the only source of
// truth. Nothing is patched locally.
type Controller struct {
	store    HoldingsStore
	prices   PriceResolver
	baseline float64 // 0 disables deviation statistics
	log      *logrus.Logger

	mu        sync.Mutex
	state     State
	gen       uint64 // refresh generation; last refresh wins
	session   models.EditSession
	snapshot  *models.PortfolioSnapshot
	deviation *models.DeviationStats
	lastErr   error
}

func NewController(store HoldingsStore, prices PriceResolver, baseline float64, log *logrus.Logger) *Controller {
	return &Controller{store: store, prices: prices, baseline: baseline, log: log, state: StateLoading}
}

// Refresh runs the full valuation pipeline: list, resolve every symbol's
// price in parallel, valuate, aggregate, deviate. It may be called at any
// time; a newer refresh supersedes an older in-flight one, whose results are
// discarded rather than merged. Partial results are never published.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()

	holdings, err := c.store.List(ctx)
	if err != nil {
		fErr := &FetchError{Target: "holdings store", Err: err}
		c.log.Errorf("list holdings failed: %v", err)
		c.fail(gen, fErr)
		return fErr
	}

	items := make([]models.ValuedLineItem, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			q, err := c.prices.Resolve(gctx, h.Symbol)
			if err != nil {
				c.log.Warnf("price for %s unresolved: %v", h.Symbol, err)
			}
			items[i] = Valuate(h, q, err)
			return nil
		})
	}
	// Per-symbol failures were already downgraded to the zero-value policy.
	_ = g.Wait()

	snap := Aggregate(items)
	var dev *models.DeviationStats
	if c.baseline != 0 {
		d, err := Deviate(snap.TotalValue, c.baseline)
		if err != nil {
			c.fail(gen, err)
			return err
		}
		dev = &d
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Superseded by a newer refresh; discard.
		return nil
	}
	c.snapshot = &snap
	c.deviation = dev
	c.lastErr = nil
	if c.session.IsEditing {
		c.state = StateEditing
	} else {
		c.state = StateIdle
	}
	return nil
}

func (c *Controller) fail(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state = StateError
	c.lastErr = err
}

// StartEdit opens the single edit session for an existing holding. The draft
// is populated from the last published snapshot and the symbol locked for
// the session's lifetime.
func (c *Controller) StartEdit(symbol string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading || c.state == StateSubmitting {
		return ErrBusy
	}
	if c.snapshot != nil {
		for _, it := range c.snapshot.Items {
			if it.Symbol == symbol {
				c.session = models.EditSession{
					IsEditing:     true,
					EditingSymbol: it.Symbol,
					Draft:         models.Draft{Symbol: it.Symbol, SharesHeld: it.SharesHeld},
				}
				c.state = StateEditing
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", database.ErrNoSuchSymbol, symbol)
}

// Cancel discards the live edit session; the draft resets to empty symbol
// and zero shares.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = models.EditSession{}
	if c.state == StateEditing {
		c.state = StateIdle
	}
}

// Submit applies the draft: an update keyed by the locked editing symbol
// when a session is live, otherwise a create with the draft symbol
// uppercased. On success the session is cleared and a full refresh runs. On
// rejection the session is kept intact so unsaved input survives; there is
// no auto-retry.
func (c *Controller) Submit(ctx context.Context, draft models.Draft) error {
	c.mu.Lock()
	if c.state == StateLoading || c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	editing := c.session.IsEditing
	target := c.session.EditingSymbol
	c.state = StateSubmitting
	c.mu.Unlock()

	var op string
	var err error
	if editing {
		op = "update"
		err = c.store.Update(ctx, target, draft.SharesHeld)
	} else {
		op = "create"
		target = strings.ToUpper(strings.TrimSpace(draft.Symbol))
		err = c.store.Create(ctx, target, draft.SharesHeld)
	}
	if err != nil {
		return c.reject(op, target, err)
	}

	c.mu.Lock()
	c.session = models.EditSession{}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Delete removes a holding directly, with no edit session involvement.
// Deleting the symbol currently being edited cancels that session, since its
// target no longer exists after the refetch.
func (c *Controller) Delete(ctx context.Context, symbol string) error {
	c.mu.Lock()
	if c.state == StateLoading || c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	if err := c.store.Delete(ctx, symbol); err != nil {
		return c.reject("delete", symbol, err)
	}

	c.mu.Lock()
	if c.session.IsEditing && c.session.EditingSymbol == symbol {
		c.session = models.EditSession{}
	}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (c *Controller) reject(op, symbol string, err error) error {
	mErr := &MutationRejectedError{Op: op, Symbol: symbol, Err: err}
	c.log.Errorf("%v", mErr)
	c.mu.Lock()
	c.state = StateError
	c.lastErr = mErr
	c.mu.Unlock()
	return mErr
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View publishes the current read-only view model. The snapshot may be stale
// while State is "loading" or "error"; consumers treat the state field as
// authoritative for freshness.
func (c *Controller) View() models.PortfolioView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := models.PortfolioView{
		State:       string(c.state),
		EditSession: c.session,
	}
	if c.snapshot != nil {
		snap := *c.snapshot
		v.Snapshot = &snap
	}
	if c.deviation != nil {
		d := *c.deviation
		v.Deviation = &d
	}
	if c.baseline != 0 {
		v.BaselineValue = FormatTotal(c.baseline)
	}
	if c.lastErr != nil {
		v.LastError = c.lastErr.Error()
	}
	return v
}
