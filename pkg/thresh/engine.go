package thresh

import (
	"fmt"
	"strconv"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// ApplyCommand runs a registered command on g with textual arguments and
// returns a new grid. Empty or missing optional arguments take the
// method's defaults.
func ApplyCommand(g *grid.Grid, commandName string, args []string) (*grid.Grid, error) {
	if g == nil {
		return nil, fmt.Errorf("source grid is nil")
	}
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch commandName {
	case "invert":
		if len(args) != 0 {
			return nil, fmt.Errorf("invert takes no args")
		}
		return Invert(g)

	case "global":
		if len(args) > 1 {
			return nil, fmt.Errorf("global takes at most 1 arg: threshold")
		}
		o := DefaultOptions(MethodGlobal)
		if s := arg(0); s != "" {
			v, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid threshold: %w", err)
			}
			o.Threshold = uint32(v)
		}
		return Apply(g, o)
	}

	m, err := ParseMethod(commandName)
	if err != nil {
		return nil, fmt.Errorf("unsupported command: %s", commandName)
	}
	o := DefaultOptions(m)
	if s := arg(0); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid window: %w", err)
		}
		o.Window = uint(v)
	}
	if m == MethodBernsen {
		if len(args) > 1 {
			return nil, fmt.Errorf("bernsen takes at most 1 arg: window")
		}
		return Apply(g, o)
	}
	if s := arg(1); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid k: %w", err)
		}
		o.K = v
	}
	if m == MethodAdaptive {
		if s := arg(2); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid epsilon: %w", err)
			}
			o.Epsilon = v
		}
	}
	return Apply(g, o)
}
