package coordinator

import (
	"sync"
	"time"

	"anonchat/pkg/log"
)

// AutoClear is the process-wide transcript clear timer. It is armed on the
// first public message and disarmed when presence drops to zero; while armed
// it fires onTick at every interval.
type AutoClear struct {
	interval time.Duration
	onTick   func()

	mu    sync.Mutex
	armed bool
	stop  chan struct{}
}

func NewAutoClear(interval time.Duration, onTick func()) *AutoClear {
	return &AutoClear{
		interval: interval,
		onTick:   onTick,
	}
}

// Arm starts the periodic tick. Arming an armed scheduler is a no-op.
func (a *AutoClear) Arm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.armed {
		return
	}
	a.armed = true
	a.stop = make(chan struct{})
	go a.run(a.stop)
	l := log.L()
	l.Info().Dur("interval", a.interval).Msg("auto-clear timer armed")
}

// Disarm cancels the periodic tick. Disarming a disarmed scheduler is a no-op.
func (a *AutoClear) Disarm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.armed {
		return
	}
	a.armed = false
	close(a.stop)
	a.stop = nil
	l := log.L()
	l.Info().Msg("auto-clear timer disarmed")
}

func (a *AutoClear) Armed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.armed
}

func (a *AutoClear) run(stop chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.onTick()
		}
	}
}
