package kinetic

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RefreshSupervisor rebuilds the dataset on a timer.
// Each rebuild makes a new service, readers keep the old one until the swap.
type RefreshSupervisor struct {
	View     *View
	Interval time.Duration
	Ticker   *time.Ticker
	StopChan chan struct{}
	WG       sync.WaitGroup
}

// NewRefreshSupervisor is a wrapper around the View that manages the reload goroutine
// They are strongly coupled, one knows about the other
func (v *View) NewRefreshSupervisor(interval time.Duration) *RefreshSupervisor {
	if interval <= 0 {
		interval = time.Minute
	}
	ps := &RefreshSupervisor{
		View:     v,
		Interval: interval,
	}
	v.Supervisor = ps
	return ps
}

// Start the RefreshSupervisor
func (p *RefreshSupervisor) Start() {
	p.StopChan = make(chan struct{})
	p.Ticker = time.NewTicker(p.Interval)

	p.WG.Add(1)
	go func() {
		defer p.WG.Done()
		defer p.Ticker.Stop()

		for {
			select {
			case <-p.Ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), p.Interval)
				if err := p.View.Reload(ctx); err != nil {
					// keep serving the previous dataset
					slog.Warn("Scheduled reload failed", slog.Any("error", err))
				}
				cancel()
			case <-p.StopChan:
				return
			}
		}
	}()
}

// Stop the RefreshSupervisor
func (p *RefreshSupervisor) Stop() {
	if p.StopChan != nil {
		close(p.StopChan)
		p.WG.Wait()
		p.StopChan = nil
	}
}

// Restart the RefreshSupervisor
func (p *RefreshSupervisor) Restart() {
	p.Stop()
	p.Start()
}
