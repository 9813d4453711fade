package animation

import (
	"maps"
	"slices"
	"strings"
)

// FrameKind says which element the component renders
type FrameKind int

const (
	FrameGradient FrameKind = iota
	FrameContainer
)

const gradientClass = "w-full h-full bg-gradient-to-r from-cyan-400 via-blue-500 to-purple-600 opacity-60"

// Frame is the synchronous render output of an Animation
type Frame struct {
	Kind  FrameKind
	Class string
	Style map[string]string
}

// CSSText renders Style as a complete inline declaration list, sorted by property.
// Assigning it replaces every property a previous frame set.
func (f Frame) CSSText() string {
	props := slices.Sorted(maps.Keys(f.Style))

	decls := make([]string, 0, len(props))
	for _, p := range props {
		decls = append(decls, p+": "+f.Style[p]+";")
	}
	return strings.Join(decls, " ")
}

func gradientFrame(className string) Frame {
	return Frame{
		Kind:  FrameGradient,
		Class: joinClass(gradientClass, className),
		Style: map[string]string{
			"width":     "150%",
			"height":    "100%",
			"transform": "translateX(-12.5%)",
			"display":   "block",
		},
	}
}

func containerFrame(className string) Frame {
	return Frame{
		Kind:  FrameContainer,
		Class: className,
		Style: map[string]string{
			"width":    "100%",
			"height":   "100%",
			"overflow": "hidden",
			"margin":   "0",
			"padding":  "0",
			"display":  "block",
		},
	}
}

func joinClass(base, extra string) string {
	return strings.TrimSpace(base + " " + extra)
}
