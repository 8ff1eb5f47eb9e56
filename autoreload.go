package shelfmap

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoReloader = (*client)(nil)

// AutoReloader provides controls for periodic reloads.
type AutoReloader interface {
	// AutoReloadOn starts reloading the datasets every configured interval.
	AutoReloadOn() error

	// AutoReloadOff stops periodic reloads and waits for a running one to end.
	AutoReloadOff() error
}

// AutoReloadOn implements AutoReloader.
func (c *client) AutoReloadOn() error {
	interval := c.options.autoReloadInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "auto_reload_interval",
			Value:   interval,
			Message: "reload interval must be positive",
		}
	}

	// Stop any existing loop first so tickers never pile up.
	if err := c.AutoReloadOff(); err != nil {
		return err
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	c.reloadTicker = ticker
	c.reloadCancel = cancel
	c.reloadDone = done

	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				loadCtx, loadCancel := context.WithTimeout(ctx, constants.LoadTimeout)
				_, err := c.Load(loadCtx)
				loadCancel()

				if err != nil {
					if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
						return
					}
					logging.Error().Err(err).Msg("Auto-reload failed, keeping previous catalog")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// AutoReloadOff implements AutoReloader.
func (c *client) AutoReloadOff() error {
	c.reloadMu.Lock()
	ticker, cancel, done := c.reloadTicker, c.reloadCancel, c.reloadDone
	c.reloadTicker, c.reloadCancel, c.reloadDone = nil, nil, nil
	c.reloadMu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return nil
}
