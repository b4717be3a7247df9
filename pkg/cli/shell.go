package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Fepozopo/lthresh/pkg/grid"
	"github.com/Fepozopo/lthresh/pkg/thresh"
)

const previewCols = 80

func shellUsage(w io.Writer) {
	fmt.Fprintln(w, "Commands available:")
	fmt.Fprintln(w, "  /  - select and apply a thresholding command")
	fmt.Fprintln(w, "  o  - open a matrix or image (o <path> skips the prompt)")
	fmt.Fprintln(w, "  s  - save current grid as a text matrix (s <path>)")
	fmt.Fprintln(w, "  i  - show grid statistics")
	fmt.Fprintln(w, "  p  - preview current grid")
	fmt.Fprintln(w, "  u  - check for updates")
	fmt.Fprintln(w, "  h  - show this help message")
	fmt.Fprintln(w, "  q  - quit")
}

// shell is the interactive loop. It holds a single current grid that
// commands replace.
type shell struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	log    *log.Logger
	cfg    Config
	store  *MetaStore
	useFzf bool

	cur    *grid.Grid
	path   string
	format string
}

func newShell(in io.Reader, out, errOut io.Writer, logger *log.Logger, cfg Config) *shell {
	return &shell{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		log:    logger,
		cfg:    cfg,
		store:  NewMetaStore(thresh.Commands),
		useFzf: fzfAvailable(),
	}
}

// run reads commands until q or end of input.
func (s *shell) run(initial string) error {
	if initial != "" {
		if err := s.open(initial); err != nil {
			return err
		}
	}
	fmt.Fprintln(s.out, "Local Threshold Shell")
	shellUsage(s.out)

	for {
		line, err := PromptLine(s.in, s.out, "> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input error: %w", err)
		}
		if line == "" {
			continue
		}
		key, arg := line[0], strings.TrimSpace(line[1:])

		switch key {
		case '/':
			if s.cur == nil {
				fmt.Fprintln(s.out, "No grid loaded. Press 'o' to open one first, or pass a path to the shell command.")
				continue
			}
			s.apply(arg)
		case 'o':
			path := arg
			if path == "" {
				if path, err = s.pickFile("Enter path to open (leave empty to cancel): "); err != nil {
					return err
				}
			}
			if path == "" {
				fmt.Fprintln(s.out, "open cancelled")
				continue
			}
			if err := s.open(path); err != nil {
				fmt.Fprintf(s.errOut, "failed to read %s: %v\n", path, err)
			}
		case 's':
			if s.cur == nil {
				fmt.Fprintln(s.out, "nothing to save")
				continue
			}
			path := arg
			if path == "" {
				if path, err = PromptLine(s.in, s.out, "Enter output filename: "); err != nil {
					return err
				}
			}
			if path == "" {
				fmt.Fprintln(s.out, "no filename provided")
				continue
			}
			if err := grid.Save(path, s.cur); err != nil {
				fmt.Fprintf(s.errOut, "failed to write grid: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "Saved to %s\n", path)
		case 'i':
			s.info()
		case 'p':
			if s.cur == nil {
				fmt.Fprintln(s.out, "nothing to preview")
				continue
			}
			if err := grid.Preview(s.out, s.cur, previewCols); err != nil {
				fmt.Fprintf(s.errOut, "preview error: %v\n", err)
			}
		case 'u':
			if err := CheckForUpdates(s.cfg.UpdateRepo, s.in, s.out); err != nil {
				fmt.Fprintf(s.errOut, "update check error: %v\n", err)
			}
		case 'h':
			shellUsage(s.out)
		case 'q':
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintf(s.out, "unknown key %q, press h for help\n", key)
		}
	}
}

func (s *shell) pickFile(prompt string) (string, error) {
	if s.useFzf {
		if sel, err := SelectFileWithFzf("."); err == nil && sel != "" {
			return sel, nil
		}
	}
	return PromptLineOrFzf(s.in, s.out, prompt)
}

func (s *shell) open(path string) error {
	g, format, err := LoadGrid(path)
	if err != nil {
		return err
	}
	s.cur, s.path, s.format = g, path, format
	fmt.Fprintf(s.out, "Opened %s\n", path)
	if info, err := GetGridInfo(g, format); err == nil {
		fmt.Fprintln(s.out, info)
	}
	return nil
}

func (s *shell) info() {
	if s.cur == nil {
		fmt.Fprintln(s.out, "No grid loaded.")
		return
	}
	st, err := grid.Summarize(s.cur)
	if err != nil {
		fmt.Fprintf(s.errOut, "info error: %v\n", err)
		return
	}
	if s.path != "" {
		fmt.Fprintf(s.out, "Source: %s (%s)\n", s.path, s.format)
	}
	fmt.Fprintln(s.out, st)
}

// selectCommand resolves the command to run: the inline selection if
// one was typed after '/', else fzf, else a numbered list.
func (s *shell) selectCommand(selection string) (string, error) {
	if selection == "" && s.useFzf {
		if name, err := SelectCommandWithFzf(s.store.Commands); err == nil && name != "" {
			return name, nil
		}
	}
	if selection == "" {
		fmt.Fprintln(s.out, "Command selection:")
		for i, c := range s.store.Commands {
			fmt.Fprintf(s.out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
		}
		var err error
		selection, err = PromptLine(s.in, s.out, "Enter number or command name (leave empty to cancel): ")
		if err != nil {
			return "", err
		}
		if selection == "" {
			return "", nil
		}
	}
	return s.store.Resolve(selection)
}

func (s *shell) apply(selection string) {
	name, err := s.selectCommand(selection)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if name == "" {
		fmt.Fprintln(s.out, "selection cancelled")
		return
	}
	c, ok := thresh.LookupCommand(name)
	if !ok {
		fmt.Fprintf(s.out, "unknown command: %s\n", name)
		return
	}

	tooltip, _, _ := s.store.GetCommandHelp(name)
	fmt.Fprintln(s.out, "\n"+tooltip+"\n")
	defaults := s.argDefaults(name)
	rawArgs := make([]string, len(c.Args))
	for i, p := range c.Args {
		prompt := fmt.Sprintf("%s (%s) [%s]: ", p.Name, p.Type, defaults[i])
		val, err := PromptLine(s.in, s.out, prompt)
		if err != nil {
			fmt.Fprintf(s.errOut, "input error: %v\n", err)
			return
		}
		if val == "" {
			val = defaults[i]
		}
		rawArgs[i] = val
	}

	normArgs, err := NormalizeArgs(s.store, name, rawArgs)
	if err != nil {
		fmt.Fprintf(s.errOut, "input validation error: %v\n", err)
		fmt.Fprintln(s.out, "aborting command due to input errors")
		return
	}

	start := time.Now()
	next, err := thresh.ApplyCommand(s.cur, name, normArgs)
	if err != nil {
		fmt.Fprintf(s.errOut, "apply command error: %v\n", err)
		return
	}
	s.log.Printf("%s %v took %s", name, normArgs, time.Since(start))
	s.cur = next
	fmt.Fprintf(s.out, "Applied %s\n", name)
	if info, err := GetGridInfo(s.cur, s.format); err == nil {
		fmt.Fprintln(s.out, info)
	}
}

// argDefaults renders the configured parameters of a command in the
// order of its ArgSpec list.
func (s *shell) argDefaults(name string) []string {
	c, _ := thresh.LookupCommand(name)
	out := make([]string, len(c.Args))
	m, err := thresh.ParseMethod(name)
	if err != nil {
		return out
	}
	o := s.cfg.Options(m)
	for i, a := range c.Args {
		switch a.Name {
		case "window":
			out[i] = strconv.FormatUint(uint64(o.Window), 10)
		case "k":
			out[i] = strconv.FormatFloat(o.K, 'g', -1, 64)
		case "epsilon":
			out[i] = strconv.FormatFloat(o.Epsilon, 'g', -1, 64)
		case "threshold":
			out[i] = strconv.FormatUint(uint64(o.Threshold), 10)
		}
	}
	return out
}
