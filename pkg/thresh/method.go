package thresh

import (
	"fmt"
	"strings"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// Method names a binarization technique.
type Method string

const (
	MethodAdaptive Method = "adaptive"
	MethodGlobal   Method = "global"
	MethodBernsen  Method = "bernsen"
	MethodNiblack  Method = "niblack"
	MethodSauvola  Method = "sauvola"
)

// Methods lists every supported method in display order.
var Methods = []Method{MethodAdaptive, MethodGlobal, MethodBernsen, MethodNiblack, MethodSauvola}

// ParseMethod accepts a method name in any case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown method %q: %w", s, grid.ErrInvalidInput)
}

// Options selects a method and its parameters. Fields a method does not
// use are ignored.
type Options struct {
	Method Method
	Window uint
	K      float64
	// Epsilon guards the adaptive denominator; 0 keeps the rule exact.
	Epsilon float64
	// Threshold is the global method's cut.
	Threshold uint32
}

// DefaultOptions returns the customary parameters for m.
func DefaultOptions(m Method) Options {
	o := Options{Method: m, Threshold: DefaultGlobalThreshold}
	switch m {
	case MethodAdaptive:
		o.Window, o.K = DefaultWindow, DefaultK
	case MethodBernsen:
		o.Window = DefaultLocalWindow
	case MethodNiblack:
		o.Window, o.K = DefaultLocalWindow, DefaultNiblackK
	case MethodSauvola:
		o.Window, o.K = DefaultLocalWindow, DefaultSauvolaK
	}
	return o
}

// Apply runs the method o describes on g.
func Apply(g *grid.Grid, o Options) (*grid.Grid, error) {
	switch o.Method {
	case MethodAdaptive, "":
		return AdaptiveThresholdEpsilon(g, o.Window, o.K, o.Epsilon)
	case MethodGlobal:
		return GlobalThreshold(g, o.Threshold)
	case MethodBernsen:
		return BernsenThreshold(g, o.Window)
	case MethodNiblack:
		return NiblackThreshold(g, o.Window, o.K)
	case MethodSauvola:
		return SauvolaThreshold(g, o.Window, o.K)
	default:
		return nil, fmt.Errorf("unknown method %q: %w", o.Method, grid.ErrInvalidInput)
	}
}
