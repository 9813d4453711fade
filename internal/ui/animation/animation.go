// Package animation renders a decorative vector animation and falls back to
// a static gradient whenever the animation cannot be shown.
package animation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// StyleDelay is how long after a load the svg styling is applied
const StyleDelay = 200 * time.Millisecond

// Options configures an Animation
type Options struct {
	Clock       clockwork.Clock // Defaults to the real clock
	ClassName   string          // Extra classes for the rendered element
	LoadOptions *LoadOptions    // Defaults to DefaultLoadOptions
}

// Animation owns at most one live renderer handle at a time
type Animation struct {
	renderer  Renderer
	clock     clockwork.Clock
	className string
	loadOpts  LoadOptions

	mu         sync.Mutex
	data       []byte
	container  Container // nil until mounted in a browser context
	handle     Handle
	hasHandle  bool
	failed     bool
	gen        uint64
	cancelLoad context.CancelFunc
	styleTimer clockwork.Timer

	loads sync.WaitGroup
}

func New(renderer Renderer, data []byte, opts Options) *Animation {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	loadOpts := DefaultLoadOptions()
	if opts.LoadOptions != nil {
		loadOpts = *opts.LoadOptions
	}

	return &Animation{
		renderer:  renderer,
		clock:     clock,
		className: opts.ClassName,
		loadOpts:  loadOpts,
		data:      bytes.Clone(data),
	}
}

// Render returns what to draw right now; it never blocks on a load
func (a *Animation) Render() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.container == nil || a.failed || !validData(a.data) {
		return gradientFrame(a.className)
	}
	return containerFrame(a.className)
}

// Failed reports whether a load error switched this instance to the gradient
func (a *Animation) Failed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed
}

// Mount attaches the component to a container and starts loading
func (a *Animation) Mount(container Container) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.container = container
	a.startLoadLocked()
}

// SetData swaps the animation data, reloading when mounted
func (a *Animation) SetData(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if bytes.Equal(a.data, data) {
		return
	}

	a.data = bytes.Clone(data)
	a.releaseLocked()
	a.startLoadLocked()
}

// Unmount cancels the styling timer and any in-flight load, then destroys the handle
func (a *Animation) Unmount() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.container = nil
}

// Wait blocks until loads started so far have settled
func (a *Animation) Wait() {
	a.loads.Wait()
}

func (a *Animation) startLoadLocked() {
	if a.container == nil || a.failed || !validData(a.data) {
		return
	}

	gen := a.gen
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelLoad = cancel

	a.loads.Add(1)
	go a.load(ctx, gen, a.container, a.data)
}

func (a *Animation) load(ctx context.Context, gen uint64, container Container, data []byte) {
	defer a.loads.Done()

	handle, err := a.safeLoad(ctx, container, data)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Superseded or unmounted while loading
	if gen != a.gen || a.container == nil {
		if err == nil {
			a.safeDestroy(handle)
		}
		return
	}

	a.cancelLoad = nil

	if err != nil {
		log.Printf("[ANIMATION]: Lottie error: %v", err)
		a.failed = true
		return
	}

	a.handle, a.hasHandle = handle, true
	a.styleTimer = a.clock.AfterFunc(StyleDelay, func() {
		a.applyStyle(gen, container)
	})
}

// applyStyle is best-effort; a stale generation or a detached container is skipped
func (a *Animation) applyStyle(gen uint64, container Container) {
	a.mu.Lock()
	live := gen == a.gen && a.container == container && a.hasHandle
	if live {
		a.styleTimer = nil
	}
	a.mu.Unlock()

	if !live {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANIMATION]: Styling skipped: %v", r)
		}
	}()
	if err := container.StyleSVG(FillStyle()); err != nil {
		log.Printf("[ANIMATION]: Styling skipped: %v", err)
	}
}

// releaseLocked invalidates in-flight work and destroys the held handle
func (a *Animation) releaseLocked() {
	a.gen++

	if a.styleTimer != nil {
		a.styleTimer.Stop()
		a.styleTimer = nil
	}

	if a.cancelLoad != nil {
		a.cancelLoad()
		a.cancelLoad = nil
	}

	if a.hasHandle {
		a.safeDestroy(a.handle)
		a.handle, a.hasHandle = nil, false
	}
}

func (a *Animation) safeLoad(ctx context.Context, container Container, data []byte) (handle Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panicked: %v", r)
		}
	}()
	return a.renderer.Load(ctx, container, data, a.loadOpts)
}

func (a *Animation) safeDestroy(handle Handle) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANIMATION]: Destroy failed: %v", r)
		}
	}()
	a.renderer.Destroy(handle)
}

// validData accepts a JSON object; missing, null or malformed data is not an animation
func validData(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
