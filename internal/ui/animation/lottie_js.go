//go:build js && wasm

package animation

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

// ErrRuntimeMissing is returned when the page did not load the lottie runtime
var ErrRuntimeMissing = errors.New("lottie runtime is not loaded")

// Element is a DOM element used as an animation container
type Element struct {
	js.Value
}

// StyleSVG styles the svg lottie rendered into the element, if it is still attached
func (e Element) StyleSVG(style SVGStyle) error {
	if !e.Get("isConnected").Truthy() {
		return errors.New("container is detached")
	}

	svg := e.Call("querySelector", "svg")
	if svg.IsNull() {
		return errors.New("no svg rendered")
	}

	css := svg.Get("style")
	css.Set("width", style.Width)
	css.Set("height", style.Height)
	css.Set("transform", style.Transform)
	css.Set("display", style.Display)
	svg.Call("setAttribute", "preserveAspectRatio", style.PreserveAspectRatio)
	return nil
}

// LottieRenderer loads animations with the page's global lottie runtime
type LottieRenderer struct{}

func (LottieRenderer) Load(ctx context.Context, c Container, data []byte, opts LoadOptions) (h Handle, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	el, ok := c.(Element)
	if !ok {
		return nil, fmt.Errorf("unsupported container %T", c)
	}

	lottie := js.Global().Get("lottie")
	if lottie.IsUndefined() || lottie.IsNull() {
		return nil, ErrRuntimeMissing
	}

	// JS exceptions surface as panics from Call
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lottie load: %v", r)
		}
	}()

	animationData := js.Global().Get("JSON").Call("parse", string(data))
	anim := lottie.Call("loadAnimation", map[string]any{
		"container":     el.Value,
		"renderer":      opts.Renderer,
		"loop":          opts.Loop,
		"autoplay":      opts.Autoplay,
		"animationData": animationData,
		"rendererSettings": map[string]any{
			"preserveAspectRatio": opts.PreserveAspectRatio,
		},
	})
	return anim, nil
}

func (LottieRenderer) Destroy(h Handle) {
	if anim, ok := h.(js.Value); ok && anim.Truthy() {
		anim.Call("destroy")
	}
}
