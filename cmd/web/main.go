//go:build js && wasm

// Command web is the browser shell: it binds the session controls and the
// background animation to the page and hands tokens to the page's realtime
// client through window.visionsync.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"syscall/js"

	"github.com/ethanbaker/visionsync/internal/ui/animation"
	"github.com/ethanbaker/visionsync/internal/ui/session"
	"github.com/ethanbaker/visionsync/pkg/sdk"
)

const animationPath = "/animation.json"

// realtimeSession fetches a token from the server and passes it to the page's realtime client
type realtimeSession struct {
	api    *sdk.Client
	bridge js.Value
}

func (s *realtimeSession) StartSession(ctx context.Context) error {
	token, err := s.api.FetchToken(ctx)
	if err != nil {
		return err
	}

	parsed := js.Global().Get("JSON").Call("parse", string(token))
	_, err = await(s.bridge.Call("connect", parsed))
	return err
}

func (s *realtimeSession) StopSession() {
	s.bridge.Call("disconnect")
}

// await blocks the calling goroutine until a JS promise settles
func await(promise js.Value) (js.Value, error) {
	type result struct {
		value js.Value
		err   error
	}
	ch := make(chan result, 1)

	onResolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- result{value: arg(args)}
		return nil
	})
	defer onResolve.Release()

	onReject := js.FuncOf(func(this js.Value, args []js.Value) any {
		ch <- result{err: errors.New(js.Global().Get("String").Invoke(arg(args)).String())}
		return nil
	})
	defer onReject.Release()

	promise.Call("then", onResolve, onReject)
	r := <-ch
	return r.value, r.err
}

func arg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

func byID(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

func setFaded(el js.Value, faded bool) {
	classes := el.Get("classList")
	classes.Call("toggle", "opacity-0", faded)
	classes.Call("toggle", "scale-95", faded)
	classes.Call("toggle", "opacity-100", !faded)
	classes.Call("toggle", "scale-100", !faded)
}

func render(v session.View) {
	defaultPanel, activePanel := byID("default-panel"), byID("active-panel")
	defaultPanel.Set("hidden", v.ShowActive)
	activePanel.Set("hidden", !v.ShowActive)
	setFaded(defaultPanel, v.Faded)
	setFaded(activePanel, v.Faded)

	start := byID("start-button")
	start.Set("textContent", v.ButtonLabel)
	start.Set("disabled", v.ButtonDisabled)
}

func renderAnimation(el js.Value, frame animation.Frame) {
	el.Set("className", frame.Class)
	el.Get("style").Set("cssText", frame.CSSText())
}

func loadAnimationData(ctx context.Context, origin string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+animationPath, nil)
	if err != nil {
		return nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[WEB]: Could not fetch animation: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(data) {
		return nil
	}
	return data
}

func main() {
	ctx := context.Background()
	origin := js.Global().Get("location").Get("origin").String()

	bridge := js.Global().Get("visionsync")
	if bridge.IsUndefined() {
		log.Println("[WEB]: window.visionsync is not defined; realtime client missing")
		return
	}

	controls := session.NewControls(&realtimeSession{
		api:    sdk.NewClient(origin),
		bridge: bridge,
	}, session.Options{OnChange: render})
	render(controls.View())

	// Event handlers must not block the JS event loop
	onStart := js.FuncOf(func(this js.Value, args []js.Value) any {
		go controls.Start(ctx)
		return nil
	})
	onStop := js.FuncOf(func(this js.Value, args []js.Value) any {
		go controls.Stop()
		return nil
	})
	onActive := js.FuncOf(func(this js.Value, args []js.Value) any {
		active := arg(args).Truthy()
		go controls.SetSessionActive(active)
		return nil
	})
	byID("start-button").Call("addEventListener", "click", onStart)
	byID("stop-button").Call("addEventListener", "click", onStop)
	bridge.Call("onActiveChange", onActive)

	// Background animation; gradient until (and unless) lottie loads
	animEl := byID("animation")
	anim := animation.New(animation.LottieRenderer{}, nil, animation.Options{ClassName: "absolute inset-0"})
	renderAnimation(animEl, anim.Render())

	anim.Mount(animation.Element{Value: animEl})
	anim.SetData(loadAnimationData(ctx, origin))
	renderAnimation(animEl, anim.Render())

	go func() {
		anim.Wait()
		renderAnimation(animEl, anim.Render())
	}()

	log.Println("[WEB]: VisionSync shell ready")
	select {}
}
