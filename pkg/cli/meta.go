package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/lthresh/pkg/thresh"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeUint  ParamType = "uint"
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI can check before invoking a command.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Example  string    `json:"example,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

func ptr(v float64) *float64 { return &v }

// GenerateTooltip produces a help string from a command spec.
func GenerateTooltip(c thresh.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString(" Parameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req))
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules derives ValidationRule entries from a command
// spec. Windows must be at least 1 and global thresholds fit in 32 bits.
func GenerateValidationRules(c thresh.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "uint":
			t = ParamTypeUint
		case "int":
			t = ParamTypeInt
		default:
			t = ParamTypeFloat
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		switch a.Name {
		case "window":
			r.Min = ptr(1)
		case "epsilon":
			r.Min = ptr(0)
		case "threshold":
			r.Max = ptr(float64(^uint32(0)))
		}
		rules[a.Name] = r
	}
	return rules
}

// MetaStore indexes the command registry by name.
type MetaStore struct {
	Commands []thresh.CommandSpec
	byName   map[string]thresh.CommandSpec
}

// NewMetaStore creates a MetaStore from a command list.
func NewMetaStore(cmds []thresh.CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]thresh.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *MetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

// Resolve maps user input (a 1-based index, an exact name or an
// unambiguous prefix, any case) to a command name.
func (m *MetaStore) Resolve(selection string) (string, error) {
	selection = strings.TrimSpace(selection)
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(m.Commands) {
			return "", fmt.Errorf("invalid selection: %d", idx)
		}
		return m.Commands[idx-1].Name, nil
	}
	lower := strings.ToLower(selection)
	var matches []string
	for _, c := range m.Commands {
		name := strings.ToLower(c.Name)
		if name == lower {
			return c.Name, nil
		}
		if strings.HasPrefix(name, lower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command: %s", selection)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous selection %q, candidates: %s", selection, strings.Join(matches, ", "))
	}
}

// NormalizeArgs validates raw textual args against a command's metadata
// and returns them in canonical form. Blank optional args stay blank so
// the engine applies its defaults.
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		var f float64
		switch vr.Type {
		case ParamTypeUint:
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected unsigned integer, got %q", a.Name, raw)
			}
			f = float64(v)
			out[i] = strconv.FormatUint(v, 10)
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			f = float64(v)
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			f = v
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			return nil, fmt.Errorf("parameter %s: unsupported param type %q", a.Name, vr.Type)
		}
		if vr.Min != nil && f < *vr.Min {
			return nil, fmt.Errorf("parameter %s: %v < min %v", a.Name, raw, *vr.Min)
		}
		if vr.Max != nil && f > *vr.Max {
			return nil, fmt.Errorf("parameter %s: %v > max %v", a.Name, raw, *vr.Max)
		}
	}
	return out, nil
}
