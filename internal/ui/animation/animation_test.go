package animation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = `{"v":"5.7.4","fr":30,"ip":0,"op":60,"w":400,"h":400,"layers":[]}`

type fakeHandle struct {
	id int
}

// fakeRenderer tracks created and destroyed handles
type fakeRenderer struct {
	mu        sync.Mutex
	created   int
	destroyed int
	live      map[*fakeHandle]bool
	lastOpts  LoadOptions

	err     error
	panics  bool
	block   chan struct{} // when set, Load waits for it to close
	started chan struct{} // receives once per Load call
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: make(map[*fakeHandle]bool)}
}

func (f *fakeRenderer) Load(ctx context.Context, c Container, data []byte, opts LoadOptions) (Handle, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.panics {
		panic("lottie is not defined")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}

	f.created++
	h := &fakeHandle{id: f.created}
	f.live[h] = true
	return h, nil
}

func (f *fakeRenderer) Destroy(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	delete(f.live, h.(*fakeHandle))
}

func (f *fakeRenderer) counts() (created, destroyed, live int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, f.destroyed, len(f.live)
}

// fakeContainer records styling calls
type fakeContainer struct {
	mu     sync.Mutex
	styles []SVGStyle
	err    error
}

func (f *fakeContainer) StyleSVG(style SVGStyle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.styles = append(f.styles, style)
	return f.err
}

func (f *fakeContainer) styled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.styles)
}

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
	BlockUntilContext(ctx context.Context, n int) error
}

func waitTimers(t *testing.T, clock fakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, n))
}

func TestRender_FallbackWithoutAnimation(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		mount bool
	}{
		{"not mounted", []byte(testData), false},
		{"nil data", nil, true},
		{"empty data", []byte("  "), true},
		{"null data", []byte("null"), true},
		{"malformed data", []byte(`{"layers":[`), true},
		{"array data", []byte(`[1,2,3]`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := newFakeRenderer()
			a := New(renderer, tt.data, Options{Clock: clockwork.NewFakeClock(), ClassName: "absolute inset-0"})

			if tt.mount {
				require.NotPanics(t, func() { a.Mount(&fakeContainer{}) })
			}

			frame := a.Render()
			assert.Equal(t, FrameGradient, frame.Kind)
			assert.Contains(t, frame.Class, "bg-gradient-to-r")
			assert.Contains(t, frame.Class, "absolute inset-0")
			assert.Equal(t, "150%", frame.Style["width"])

			a.Wait()
			created, _, _ := renderer.counts()
			assert.Zero(t, created)
		})
	}
}

func TestMount_LoadsAndStyles(t *testing.T) {
	clock := clockwork.NewFakeClock()
	renderer := newFakeRenderer()
	container := &fakeContainer{}
	a := New(renderer, []byte(testData), Options{Clock: clock})

	a.Mount(container)
	assert.Equal(t, FrameContainer, a.Render().Kind)

	a.Wait()
	created, _, live := renderer.counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, live)
	assert.Equal(t, DefaultLoadOptions(), renderer.lastOpts)

	waitTimers(t, clock, 1)
	clock.Advance(StyleDelay)
	require.Eventually(t, func() bool { return container.styled() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, FillStyle(), container.styles[0])
}

func TestLoadError_SwitchesToGradient(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.err = errors.New("failed to fetch dynamically imported module")
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.Wait()

	assert.True(t, a.Failed())
	assert.Equal(t, FrameGradient, a.Render().Kind)

	// No retry, not even for new data
	renderer.err = nil
	a.SetData([]byte(`{"layers":[{}]}`))
	a.Wait()
	created, _, _ := renderer.counts()
	assert.Zero(t, created)
	assert.Equal(t, FrameGradient, a.Render().Kind)
}

func TestLoadPanic_IsALoadError(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.panics = true
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.Wait()

	assert.True(t, a.Failed())
	assert.Equal(t, FrameGradient, a.Render().Kind)
}

func TestSetData_DestroysBeforeReload(t *testing.T) {
	renderer := newFakeRenderer()
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.Wait()

	for i := range 5 {
		a.SetData([]byte(`{"layers":[],"ip":` + string(rune('0'+i)) + `}`))
		a.Wait()

		created, destroyed, live := renderer.counts()
		assert.Equal(t, i+2, created)
		assert.Equal(t, i+1, destroyed)
		assert.Equal(t, 1, live)
	}

	// Same data is not a change
	a.SetData([]byte(`{"layers":[],"ip":4}`))
	a.Wait()
	created, _, _ := renderer.counts()
	assert.Equal(t, 6, created)
}

func TestSetData_InvalidReleasesHandle(t *testing.T) {
	renderer := newFakeRenderer()
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.Wait()

	a.SetData(nil)
	a.Wait()

	_, _, live := renderer.counts()
	assert.Zero(t, live)
	assert.Equal(t, FrameGradient, a.Render().Kind)
}

func TestUnmount_MidLoad(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.block = make(chan struct{})
	renderer.started = make(chan struct{}, 1)
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	<-renderer.started

	a.Unmount()
	close(renderer.block)
	a.Wait()

	created, destroyed, live := renderer.counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, created, destroyed)
	assert.Zero(t, live)
	assert.Equal(t, FrameGradient, a.Render().Kind)
}

func TestSupersededLoads_LeaveOneHandle(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.block = make(chan struct{})
	renderer.started = make(chan struct{}, 3)
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.SetData([]byte(`{"layers":[],"op":1}`))
	a.SetData([]byte(`{"layers":[],"op":2}`))
	for range 3 {
		<-renderer.started
	}

	close(renderer.block)
	a.Wait()

	created, destroyed, live := renderer.counts()
	assert.Equal(t, 3, created)
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, 1, live)

	a.Unmount()
	created, destroyed, live = renderer.counts()
	assert.Equal(t, created, destroyed)
	assert.Zero(t, live)
}

func TestUnmount_CancelsStyling(t *testing.T) {
	clock := clockwork.NewFakeClock()
	renderer := newFakeRenderer()
	container := &fakeContainer{}
	a := New(renderer, []byte(testData), Options{Clock: clock})

	a.Mount(container)
	a.Wait()
	waitTimers(t, clock, 1)

	a.Unmount()
	waitTimers(t, clock, 0)

	clock.Advance(StyleDelay)
	assert.Zero(t, container.styled())

	created, destroyed, _ := renderer.counts()
	assert.Equal(t, created, destroyed)
}

func TestStylingErrorsAreIgnored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	container := &fakeContainer{err: errors.New("svg not found")}
	a := New(newFakeRenderer(), []byte(testData), Options{Clock: clock})

	a.Mount(container)
	a.Wait()
	waitTimers(t, clock, 1)
	clock.Advance(StyleDelay)

	require.Eventually(t, func() bool { return container.styled() == 1 }, time.Second, time.Millisecond)
	assert.False(t, a.Failed())
	assert.Equal(t, FrameContainer, a.Render().Kind)
}

func TestRemount_ReusesInstance(t *testing.T) {
	renderer := newFakeRenderer()
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock()})

	a.Mount(&fakeContainer{})
	a.Wait()
	a.Mount(&fakeContainer{})
	a.Wait()

	created, destroyed, live := renderer.counts()
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 1, live)
}

func TestCustomLoadOptions(t *testing.T) {
	renderer := newFakeRenderer()
	opts := LoadOptions{Renderer: "canvas", Loop: false, Autoplay: true, PreserveAspectRatio: "xMidYMid meet"}
	a := New(renderer, []byte(testData), Options{Clock: clockwork.NewFakeClock(), LoadOptions: &opts})

	a.Mount(&fakeContainer{})
	a.Wait()

	assert.Equal(t, opts, renderer.lastOpts)
}

func TestFrame_CSSText(t *testing.T) {
	gradient := gradientFrame("")
	container := containerFrame("")

	assert.Equal(t,
		"display: block; height: 100%; transform: translateX(-12.5%); width: 150%;",
		gradient.CSSText())

	// The container replaces the gradient's declarations wholesale, so its
	// own offset is never stacked on the SVG's
	css := container.CSSText()
	assert.NotContains(t, css, "transform")
	assert.Equal(t,
		"display: block; height: 100%; margin: 0; overflow: hidden; padding: 0; width: 100%;",
		css)

	assert.Empty(t, Frame{}.CSSText())
}
