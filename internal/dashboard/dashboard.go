package dashboard

import (
	"context"
	"io"
	"sync"
	"time"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

// State is what the dashboard currently shows. Data is replaced wholesale on
// every successful poll and left untouched on failure.
type State struct {
	Data      entities.AggregateResponse
	UpdatedAt time.Time
	Err       error
}

// Dashboard polls the merged endpoint and redraws after every poll
type Dashboard struct {
	fetcher     Fetcher
	keys        []string
	out         io.Writer
	interval    time.Duration
	clearScreen bool
	now         func() time.Time

	mu    sync.RWMutex
	state State
}

type Option func(*Dashboard)

// WithClearScreen redraws from the top of the terminal instead of appending
func WithClearScreen(enabled bool) Option {
	return func(d *Dashboard) {
		d.clearScreen = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// New builds a dashboard; keys fixes the card order
func New(fetcher Fetcher, keys []string, out io.Writer, interval time.Duration, opts ...Option) *Dashboard {
	d := &Dashboard{
		fetcher:  fetcher,
		keys:     keys,
		out:      out,
		interval: interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refresh runs one poll and updates the state
func (d *Dashboard) Refresh(ctx context.Context) State {
	data, err := d.fetcher.FetchAll(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		logging.WarnWithError(ctx, "Dashboard poll failed", err, logging.Fields{
			logging.FieldEvent: "dashboard_poll_failed",
		})
		d.state.Err = err
		return d.state
	}

	d.state = State{
		Data:      data,
		UpdatedAt: d.now(),
	}
	logging.Debug(ctx, "Dashboard poll succeeded", logging.Fields{
		"pairs_reported":   len(data),
		logging.FieldEvent: "dashboard_poll",
	})
	return d.state
}

// State returns the current state
func (d *Dashboard) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Run polls immediately and then every interval until ctx is done
func (d *Dashboard) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if err := d.draw(d.Refresh(ctx)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (d *Dashboard) draw(state State) error {
	if d.clearScreen {
		if _, err := io.WriteString(d.out, "\033[H\033[2J"); err != nil {
			return err
		}
	}
	return Render(d.out, state, d.keys, d.now(), 2*d.interval)
}
