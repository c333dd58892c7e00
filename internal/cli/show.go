package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/render"
	"github.com/atomicstack/buildtree/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (c *commands) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <filePath>",
		Short: "Print a tree without starting the editor",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runShow,
	}
}

func (c *commands) runShow(cmd *cobra.Command, args []string) error {
	s, ok, err := c.open(cmd, args[0])
	if err != nil || !ok {
		return err
	}
	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	opts := render.Options{
		MaxWidth: c.cfg.App.Width,
		Unicode:  !c.cfg.App.ASCII,
	}
	if opts.MaxWidth == 0 && tty {
		if width, _, err := term.GetSize(int(out.(*os.File).Fd())); err == nil {
			opts.MaxWidth = width
		}
	}
	if tty {
		opts.LabelStyle = *theme.Default().Label
	}

	lines, err := s.View(opts)
	events.Tree.Render(len(lines), err)
	if err != nil {
		return fmt.Errorf("render %s: %w", s.Path(), err)
	}
	if tty {
		_, err = io.WriteString(out, lines.Styled())
	} else {
		_, err = io.WriteString(out, lines.String())
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
