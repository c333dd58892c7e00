// Package cli wires the buildtree commands onto cobra.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/buildtree/internal/app"
	"github.com/atomicstack/buildtree/internal/config"
	"github.com/atomicstack/buildtree/internal/logging"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/spf13/cobra"
)

// Runner starts the interactive editor over a session.
type Runner func(cfg app.Config, s *session.Session) error

// Deps carries the collaborators a command tree needs. Zero values fall back
// to the interactive defaults.
type Deps struct {
	Prompter Prompter
	Run      Runner
	Environ  []string
	// OnStart is called once the configuration is parsed and logging is set up.
	OnStart func(cfg config.Config)
}

type commands struct {
	deps Deps
	opts *config.Options
	cfg  config.Config
}

// NewRootCommand builds the buildtree command tree. Running it without a
// subcommand behaves like new.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Prompter == nil {
		deps.Prompter = huhPrompter{}
	}
	if deps.Run == nil {
		deps.Run = app.Run
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ()
	}
	c := &commands{deps: deps}

	root := &cobra.Command{
		Use:   "buildtree [rootName] [filePath]",
		Short: "Build and edit labelled trees in the terminal",
		Long: `buildtree edits an arbitrary-depth tree of labelled nodes and saves it
as an XML, YAML or JSON document. Without a subcommand it starts a new tree.`,
		Args:              cobra.MaximumNArgs(2),
		RunE:              c.runNew,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	c.opts = config.Register(root.PersistentFlags(), deps.Environ)

	root.AddCommand(
		c.newCommand(),
		c.loadCommand(),
		c.showCommand(),
	)
	return root
}

// Execute runs the command tree with args and returns the first error.
func Execute(deps Deps, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(deps)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func (c *commands) setup(cmd *cobra.Command, args []string) error {
	cfg := c.opts.Config(args)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	c.cfg = cfg
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if c.deps.OnStart != nil {
		c.deps.OnStart(cfg)
	}
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printMissing(w io.Writer, path string) {
	fmt.Fprintln(w, "This file does not exist.")
	fmt.Fprintln(w, path)
}
