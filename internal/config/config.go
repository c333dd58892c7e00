package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/buildtree/internal/app"
	"github.com/spf13/pflag"
)

// ErrInvalid is matched by every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth   = "BUILDTREE_WIDTH"
	envHeight  = "BUILDTREE_HEIGHT"
	envASCII   = "BUILDTREE_ASCII"
	envFooter  = "BUILDTREE_FOOTER"
	envTrace   = "BUILDTREE_TRACE"
	envLogFile = "BUILDTREE_LOG_FILE"
	envWatch   = "BUILDTREE_WATCH"
)

// Options holds the flag values registered on a flag set.
type Options struct {
	width   *int
	height  *int
	ascii   *bool
	footer  *bool
	trace   *bool
	watch   *bool
	logFile *string
}

// Register adds the runtime flags to fs, taking defaults from environ.
func Register(fs *pflag.FlagSet, environ []string) *Options {
	env := parseEnv(environ)
	return &Options{
		width:   fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:  fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		ascii:   fs.Bool("ascii", envOrBool(env, envASCII, false), "draw tree guides with plain ASCII characters"),
		footer:  fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer hint row (disabled by default)"),
		trace:   fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		watch:   fs.Bool("watch", envOrBool(env, envWatch, true), "reload the tree when its file changes on disk"),
		logFile: fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Config assembles a Config from the parsed flag values and positional args.
func (o *Options) Config(args []string) Config {
	return Config{
		App: app.Config{
			Width:      *o.width,
			Height:     *o.height,
			ASCII:      *o.ascii,
			ShowFooter: *o.footer,
			Watch:      *o.watch,
		},
		Logging: Logging{
			FilePath: *o.logFile,
			Trace:    *o.trace,
		},
		Flags: map[string]string{
			"width":   strconv.Itoa(*o.width),
			"height":  strconv.Itoa(*o.height),
			"ascii":   strconv.FormatBool(*o.ascii),
			"footer":  strconv.FormatBool(*o.footer),
			"trace":   strconv.FormatBool(*o.trace),
			"watch":   strconv.FormatBool(*o.watch),
			"logFile": *o.logFile,
		},
		Args: append([]string(nil), args...),
	}
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("buildtree", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	opts := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg := opts.Config(fs.Args())
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects negative viewport sizes.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("%w: width must be >= 0 (got %d)", ErrInvalid, cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("%w: height must be >= 0 (got %d)", ErrInvalid, cfg.App.Height)
	}
	return nil
}
