package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/lthresh/pkg/thresh"
)

// Environment keys read by LoadConfig. A .env file in the working
// directory may set them; real environment variables win.
const (
	EnvMethod          = "LTHRESH_METHOD"
	EnvWindow          = "LTHRESH_WINDOW"
	EnvK               = "LTHRESH_K"
	EnvEpsilon         = "LTHRESH_EPSILON"
	EnvGlobalThreshold = "LTHRESH_GLOBAL_THRESHOLD"
	EnvUpdateRepo      = "LTHRESH_UPDATE_REPO"
	EnvVerbose         = "LTHRESH_VERBOSE"

	DefaultUpdateRepo = "Fepozopo/lthresh"
)

// Config holds environment-level defaults. Nil pointers mean "use the
// method's own default".
type Config struct {
	Method     thresh.Method
	Window     *uint
	K          *float64
	Epsilon    *float64
	Threshold  *uint32
	UpdateRepo string
	Verbose    bool
}

// LoadConfig loads envFile (if it exists) into the process environment
// without overriding variables that are already set, then reads the
// LTHRESH_* keys.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	c := Config{Method: thresh.MethodAdaptive, UpdateRepo: DefaultUpdateRepo}

	if s := strings.TrimSpace(getenv(EnvMethod)); s != "" {
		m, err := thresh.ParseMethod(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMethod, err)
		}
		c.Method = m
	}
	if s := strings.TrimSpace(getenv(EnvWindow)); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil || v == 0 {
			return Config{}, fmt.Errorf("%s: invalid window %q", EnvWindow, s)
		}
		w := uint(v)
		c.Window = &w
	}
	if s := strings.TrimSpace(getenv(EnvK)); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid k %q: %w", EnvK, s, err)
		}
		c.K = &v
	}
	if s := strings.TrimSpace(getenv(EnvEpsilon)); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return Config{}, fmt.Errorf("%s: invalid epsilon %q", EnvEpsilon, s)
		}
		c.Epsilon = &v
	}
	if s := strings.TrimSpace(getenv(EnvGlobalThreshold)); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid threshold %q: %w", EnvGlobalThreshold, s, err)
		}
		t := uint32(v)
		c.Threshold = &t
	}
	if s := strings.TrimSpace(getenv(EnvUpdateRepo)); s != "" {
		c.UpdateRepo = s
	}
	if s := strings.TrimSpace(getenv(EnvVerbose)); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid boolean %q", EnvVerbose, s)
		}
		c.Verbose = v
	}
	return c, nil
}

// Options returns the parameters for m: the method's defaults overlaid
// with whatever the environment set.
func (c Config) Options(m thresh.Method) thresh.Options {
	o := thresh.DefaultOptions(m)
	if c.Window != nil {
		o.Window = *c.Window
	}
	if c.K != nil {
		o.K = *c.K
	}
	if c.Epsilon != nil {
		o.Epsilon = *c.Epsilon
	}
	if c.Threshold != nil {
		o.Threshold = *c.Threshold
	}
	return o
}
