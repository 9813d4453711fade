package animation

import "context"

// Handle is a loaded animation instance owned by one Animation
type Handle any

// LoadOptions are passed through to the vector animation runtime
type LoadOptions struct {
	Renderer            string
	Loop                bool
	Autoplay            bool
	PreserveAspectRatio string
}

// DefaultLoadOptions renders to SVG, loops, autoplays and stretches to fill
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Renderer:            "svg",
		Loop:                true,
		Autoplay:            true,
		PreserveAspectRatio: "none",
	}
}

// Renderer is the animation runtime capability
type Renderer interface {
	Load(ctx context.Context, container Container, data []byte, opts LoadOptions) (Handle, error)
	Destroy(h Handle)
}

// Container is the element an animation renders into
type Container interface {
	StyleSVG(style SVGStyle) error
}

// SVGStyle is applied to the rendered svg shortly after load
type SVGStyle struct {
	Width               string
	Height              string
	Transform           string
	Display             string
	PreserveAspectRatio string
}

// FillStyle widens the svg past the container and recentres it
func FillStyle() SVGStyle {
	return SVGStyle{
		Width:               "150%",
		Height:              "100%",
		Transform:           "translateX(-12.5%)",
		Display:             "block",
		PreserveAspectRatio: "none",
	}
}
