// Registry of the commands ApplyCommand understands.
//
// Keep this list in step with the switch in engine.go so the CLI, help
// text and validation read a single source of truth.

package thresh

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "uint"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
}

// Commands is the authoritative list of commands implemented by ApplyCommand.
var Commands = []CommandSpec{
	{
		Name: string(MethodAdaptive),
		Args: []ArgSpec{
			{"window", "uint", false, "7", "window side length"},
			{"k", "float", false, "0.2", "sensitivity"},
			{"epsilon", "float", false, "0", "denominator guard (0 = exact rule)"},
		},
		Usage:       "adaptive [window] [k] [epsilon]",
		Description: "Local adaptive threshold against the summed-area window mean.",
	},
	{
		Name:        string(MethodGlobal),
		Args:        []ArgSpec{{"threshold", "uint", false, "120", "cut value"}},
		Usage:       "global [threshold]",
		Description: "Single global cut: value >= threshold becomes 255.",
	},
	{
		Name:        string(MethodBernsen),
		Args:        []ArgSpec{{"window", "uint", false, "9", "window side length"}},
		Usage:       "bernsen [window]",
		Description: "Bernsen local mid-range threshold.",
	},
	{
		Name: string(MethodNiblack),
		Args: []ArgSpec{
			{"window", "uint", false, "9", "window side length"},
			{"k", "float", false, "-0.15", "weight of the local standard deviation"},
		},
		Usage:       "niblack [window] [k]",
		Description: "Niblack threshold: mean + k*stddev.",
	},
	{
		Name: string(MethodSauvola),
		Args: []ArgSpec{
			{"window", "uint", false, "9", "window side length"},
			{"k", "float", false, "0.1", "sensitivity"},
		},
		Usage:       "sauvola [window] [k]",
		Description: "Sauvola threshold: mean*(1+k*(stddev/128-1)).",
	},
	{
		Name:        "invert",
		Args:        []ArgSpec{},
		Usage:       "invert",
		Description: "Swap foreground and background (255-v).",
	},
}

// LookupCommand returns the spec registered under name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
