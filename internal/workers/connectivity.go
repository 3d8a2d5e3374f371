package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/logger"
)

const defaultProbeInterval = 15 * time.Second

// ConnectivityWatcher polls the remote store with Ping on a fixed interval
// and keeps the last observed reachability state. When the state flips from
// offline to online it invokes the registered callbacks, which is how a
// regained connection triggers a queue drain.
//
// The watcher starts optimistic: Online reports true until the first probe
// says otherwise, so a drain attempted right after startup is not rejected
// by a guard that has simply not run yet.
type ConnectivityWatcher struct {
	pinger   Pinger
	interval time.Duration
	logger   *logger.Logger

	mu       sync.RWMutex
	online   bool
	onOnline []func()

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewConnectivityWatcher(pinger Pinger, interval time.Duration, log *logger.Logger) *ConnectivityWatcher {
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	return &ConnectivityWatcher{
		pinger:   pinger,
		interval: interval,
		logger:   log,
		online:   true,
		done:     make(chan struct{}),
	}
}

// OnOnline registers a callback fired when connectivity transitions from
// offline to online. Callbacks run on the watcher goroutine, so a long
// callback delays the next probe. Register before Run.
func (w *ConnectivityWatcher) OnOnline(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onOnline = append(w.onOnline, fn)
}

// Online reports the last observed reachability state.
func (w *ConnectivityWatcher) Online() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.online
}

// Run implements Worker. It probes once immediately, then on every tick
// until Stop is called.
func (w *ConnectivityWatcher) Run() {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		w.probe()

		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-t.C:
				w.probe()
			}
		}
	}()
}

// Stop implements Worker.
func (w *ConnectivityWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
}

// probe pings the server once. The request deadline is bounded by the probe
// interval so a hung probe cannot outlive its tick.
func (w *ConnectivityWatcher) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	err := w.pinger.Ping(ctx)
	w.setOnline(err == nil)
}

// setOnline records the probe result and fires the registered callbacks on
// an offline to online transition.
func (w *ConnectivityWatcher) setOnline(online bool) {
	w.mu.Lock()
	regained := online && !w.online
	lost := !online && w.online
	w.online = online
	callbacks := w.onOnline
	w.mu.Unlock()

	switch {
	case regained:
		w.logger.Info().Str("func", "ConnectivityWatcher.setOnline").Msg("connectivity regained")
		for _, fn := range callbacks {
			fn()
		}
	case lost:
		w.logger.Warn().Str("func", "ConnectivityWatcher.setOnline").Msg("connectivity lost")
	}
}
