// Package session drives the start/stop control panel. Input events call
// transition functions directly; presentation holds are clock timers owned
// by the Controls instance and cancelled on Close.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Session is the realtime session the controls start and stop
type Session interface {
	StartSession(ctx context.Context) error
	StopSession()
}

// Options configures Controls
type Options struct {
	Clock    clockwork.Clock // Defaults to the real clock
	OnChange func(View)      // Called after transitions; must not call Start, Stop or SetSessionActive
}

// Controls is the session control state machine
type Controls struct {
	session  Session
	clock    clockwork.Clock
	onChange func(View)

	mu         sync.Mutex
	state      State
	showActive bool
	timers     map[*timer]struct{}
	closed     bool
	version    uint64

	notifyMu sync.Mutex
	notified uint64
}

type timer struct {
	clockwork.Timer
}

func NewControls(session Session, opts Options) *Controls {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Controls{
		session:  session,
		clock:    clock,
		onChange: opts.OnChange,
		timers:   make(map[*timer]struct{}),
	}
}

// View returns the current render state
func (c *Controls) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Start handles a click on the start button. It returns false when the click was
// ignored because a start is already in flight or the session is not idle.
func (c *Controls) Start(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.state != Idle {
		c.mu.Unlock()
		return false
	}
	c.state = Activating
	c.changedLocked()
	c.mu.Unlock()
	c.flush()

	err := c.session.StartSession(ctx)
	if err != nil {
		log.Printf("[SESSION]: Start session error: %v", err)
	}

	c.mu.Lock()
	// The session may have reported itself active while the start was in flight
	if !c.closed && c.state == Activating {
		if err != nil {
			c.state = Idle
		} else {
			c.state = Active
		}
		c.changedLocked()
	}
	c.mu.Unlock()
	c.flush()

	return true
}

// Stop handles a click on the stop button
func (c *Controls) Stop() bool {
	c.mu.Lock()
	if c.closed || !c.showActive || c.state == TransitioningOut {
		c.mu.Unlock()
		return false
	}

	c.cancelTimersLocked()
	c.state = TransitioningOut
	c.schedule(StopHold, func() {
		c.showActive = false
		c.state = Idle
	})
	c.changedLocked()
	c.mu.Unlock()
	c.flush()

	c.session.StopSession()
	return true
}

// SetSessionActive reports the realtime session's own active flag
func (c *Controls) SetSessionActive(active bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	switch {
	case active && !c.showActive && c.state != TransitioningIn:
		c.state = TransitioningIn
		c.schedule(TransitionHold, func() {
			c.showActive = true
			c.schedule(SettleDelay, func() { c.state = Active })
		})

	case !active && c.showActive && c.state != TransitioningOut:
		// Ended from the other side
		c.cancelTimersLocked()
		c.state = TransitioningOut
		c.schedule(TransitionHold, func() {
			c.showActive = false
			c.schedule(SettleDelay, func() { c.state = Idle })
		})

	case !active && !c.showActive && (c.state == Active || c.state == TransitioningIn):
		// Started but never shown; go straight back
		c.cancelTimersLocked()
		c.state = Idle

	default:
		c.mu.Unlock()
		return
	}

	c.changedLocked()
	c.mu.Unlock()
	c.flush()
}

// Close cancels pending timers; later events and timer callbacks are ignored
func (c *Controls) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cancelTimersLocked()
}

// schedule runs fn under the lock after d unless the timer is cancelled first
func (c *Controls) schedule(d time.Duration, fn func()) {
	t := &timer{}
	c.timers[t] = struct{}{}

	// The callback blocks on mu until schedule's caller releases it, so t.Timer is set by then
	t.Timer = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		if _, live := c.timers[t]; !live || c.closed {
			c.mu.Unlock()
			return
		}
		delete(c.timers, t)

		fn()
		c.changedLocked()
		c.mu.Unlock()
		c.flush()
	})
}

func (c *Controls) cancelTimersLocked() {
	for t := range c.timers {
		t.Stop()
		delete(c.timers, t)
	}
}

func (c *Controls) changedLocked() {
	c.version++
}

// flush delivers the newest view once; older snapshots racing behind it are dropped
func (c *Controls) flush() {
	if c.onChange == nil {
		return
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	version, view := c.version, c.viewLocked()
	c.mu.Unlock()

	if version <= c.notified {
		return
	}
	c.notified = version
	c.onChange(view)
}

func (c *Controls) viewLocked() View {
	label := LabelStart
	if c.state == Activating {
		label = LabelStarting
	}

	return View{
		State:          c.state,
		ShowActive:     c.showActive,
		Faded:          c.state.Transitioning(),
		ButtonLabel:    label,
		ButtonDisabled: c.state == Activating,
	}
}
