package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Fepozopo/lthresh/pkg/grid"
	"github.com/Fepozopo/lthresh/pkg/thresh"
	"github.com/Fepozopo/lthresh/pkg/version"
)

// Exit codes returned by Main.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// envFile is loaded by Main before the LTHRESH_* keys are read.
var envFile = ".env"

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lthresh <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run      threshold a grid: -in F [-out F] [-method M] [-window N] [-k F] [-epsilon F] [-t N]")
	fmt.Fprintln(w, "  import   convert a raster image to a text matrix: -in IMG -out F")
	fmt.Fprintln(w, "  info     print grid statistics: -in F [-preview]")
	fmt.Fprintln(w, "  sum      query a window sum: -in F -row R -col C [-window N]")
	fmt.Fprintln(w, "  methods  list thresholding commands")
	fmt.Fprintln(w, "  shell    interactive session (default) [F]")
	fmt.Fprintln(w, "  update   check for a newer release")
	fmt.Fprintln(w, "  version  print build information")
}

// app carries what every subcommand needs.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
	cfg    Config
}

// Main runs the command line and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return exitUsage
	}
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    log.New(io.Discard, "lthresh: ", 0),
		cfg:    cfg,
	}
	if cfg.Verbose {
		a.log.SetOutput(stderr)
	}

	if len(args) == 0 {
		return a.shell(nil)
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "run":
		return a.run(rest)
	case "import":
		return a.importRaster(rest)
	case "info":
		return a.info(rest)
	case "sum":
		return a.sum(rest)
	case "methods":
		return a.methods()
	case "shell":
		return a.shell(rest)
	case "update":
		if err := CheckForUpdates(cfg.UpdateRepo, bufio.NewReader(stdin), stdout); err != nil {
			fmt.Fprintf(stderr, "update check error: %v\n", err)
			return exitError
		}
		return exitOK
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "lthresh %s\n", version.String())
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		usage(stderr)
		return exitUsage
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parse returns an exit code when the caller should stop.
func (a *app) parse(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, true
		}
		return exitUsage, true
	}
	return 0, false
}

func (a *app) fail(err error) int {
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	return exitError
}

func (a *app) run(args []string) int {
	fs := a.flagSet("run")
	in := fs.String("in", "", "input text matrix or raster image")
	out := fs.String("out", "", "output text matrix (stdout when empty or -)")
	method := fs.String("method", string(a.cfg.Method), "thresholding method")
	window := fs.Uint("window", 0, "window side length")
	k := fs.Float64("k", 0, "sensitivity")
	eps := fs.Float64("epsilon", 0, "adaptive denominator guard")
	t := fs.Uint("t", 0, "global threshold")
	verbose := fs.Bool("v", false, "log timing")
	if code, stop := a.parse(fs, args); stop {
		return code
	}
	if *in == "" {
		fmt.Fprintln(a.stderr, "run: -in is required")
		return exitUsage
	}
	if *verbose {
		a.log.SetOutput(a.stderr)
	}

	m, err := thresh.ParseMethod(*method)
	if err != nil {
		return a.fail(err)
	}
	o := a.cfg.Options(m)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window":
			o.Window = *window
		case "k":
			o.K = *k
		case "epsilon":
			o.Epsilon = *eps
		case "t":
			o.Threshold = uint32(*t)
		}
	})

	g, format, err := LoadGrid(*in)
	if err != nil {
		return a.fail(err)
	}
	a.log.Printf("loaded %s (%s, %dx%d)", *in, format, g.Width(), g.Height())

	start := time.Now()
	res, err := thresh.Apply(g, o)
	if err != nil {
		return a.fail(err)
	}
	a.log.Printf("%s window=%d k=%g epsilon=%g took %s", o.Method, o.Window, o.K, o.Epsilon, time.Since(start))

	if *out == "" || *out == "-" {
		if err := grid.Write(a.stdout, res); err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.stdout)
		return exitOK
	}
	if err := grid.Save(*out, res); err != nil {
		return a.fail(err)
	}
	a.log.Printf("wrote %s", *out)
	return exitOK
}

func (a *app) importRaster(args []string) int {
	fs := a.flagSet("import")
	in := fs.String("in", "", "input raster image")
	out := fs.String("out", "", "output text matrix (stdout when empty or -)")
	if code, stop := a.parse(fs, args); stop {
		return code
	}
	if *in == "" {
		fmt.Fprintln(a.stderr, "import: -in is required")
		return exitUsage
	}
	g, format, err := grid.LoadImage(*in)
	if err != nil {
		return a.fail(err)
	}
	a.log.Printf("decoded %s as %s", *in, format)
	if *out == "" || *out == "-" {
		if err := grid.Write(a.stdout, g); err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.stdout)
		return exitOK
	}
	if err := grid.Save(*out, g); err != nil {
		return a.fail(err)
	}
	return exitOK
}

func (a *app) info(args []string) int {
	fs := a.flagSet("info")
	in := fs.String("in", "", "input text matrix or raster image")
	preview := fs.Bool("preview", false, "draw the grid with block characters")
	cols := fs.Int("cols", previewCols, "preview width")
	if code, stop := a.parse(fs, args); stop {
		return code
	}
	if *in == "" {
		fmt.Fprintln(a.stderr, "info: -in is required")
		return exitUsage
	}
	g, format, err := LoadGrid(*in)
	if err != nil {
		return a.fail(err)
	}
	st, err := grid.Summarize(g)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "Format: %s\n%s\n", format, st)
	if *preview {
		if err := grid.Preview(a.stdout, g, *cols); err != nil {
			return a.fail(err)
		}
	}
	return exitOK
}

func (a *app) sum(args []string) int {
	fs := a.flagSet("sum")
	in := fs.String("in", "", "input text matrix or raster image")
	row := fs.Int("row", 0, "window center row")
	col := fs.Int("col", 0, "window center column")
	window := fs.Uint("window", a.cfg.Options(thresh.MethodAdaptive).Window, "window side length")
	if code, stop := a.parse(fs, args); stop {
		return code
	}
	if *in == "" {
		fmt.Fprintln(a.stderr, "sum: -in is required")
		return exitUsage
	}
	g, _, err := LoadGrid(*in)
	if err != nil {
		return a.fail(err)
	}
	if !g.Contains(*row, *col) {
		w, h := g.Bounds()
		return a.fail(fmt.Errorf("center (%d,%d) not in %dx%d grid: %w", *row, *col, w, h, grid.ErrOutOfRange))
	}
	sat, err := thresh.NewSummedAreaTable(g)
	if err != nil {
		return a.fail(err)
	}
	s, err := sat.WindowSum(*row, *col, *window)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.stdout, s)
	return exitOK
}

func (a *app) methods() int {
	store := NewMetaStore(thresh.Commands)
	for _, c := range store.Commands {
		fmt.Fprintf(a.stdout, "%-9s %s\n", c.Name, c.Usage)
		fmt.Fprintf(a.stdout, "          %s\n", c.Description)
	}
	return exitOK
}

func (a *app) shell(args []string) int {
	var initial string
	if len(args) > 0 {
		initial = args[0]
	}
	sh := newShell(a.stdin, a.stdout, a.stderr, a.log, a.cfg)
	if err := sh.run(initial); err != nil && !errors.Is(err, io.EOF) {
		return a.fail(err)
	}
	return exitOK
}
