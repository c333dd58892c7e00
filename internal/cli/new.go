package cli

import (
	"fmt"
	"strings"

	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	"github.com/spf13/cobra"
)

const (
	rootNamePrompt  = "What is the root name of the tree?"
	filePathPrompt  = "Where do you want to save the file?"
	overwritePrompt = "This file already exists, do you want to overwrite it?"
)

func (c *commands) newCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [rootName] [filePath]",
		Short: "Create a tree and start editing it",
		Args:  cobra.MaximumNArgs(2),
		RunE:  c.runNew,
	}
}

func (c *commands) runNew(cmd *cobra.Command, args []string) error {
	rootName := argAt(args, 0)
	filePath := strings.TrimSpace(argAt(args, 1))

	var err error
	if strings.TrimSpace(rootName) == "" {
		if rootName, err = c.deps.Prompter.Input(rootNamePrompt); err != nil {
			return promptError(err)
		}
	}
	if filePath == "" {
		if filePath, err = c.deps.Prompter.Input(filePathPrompt); err != nil {
			return promptError(err)
		}
		filePath = strings.TrimSpace(filePath)
	}

	store := document.NewStore(filePath)
	if store.Exists() {
		overwrite, err := c.deps.Prompter.Confirm(overwritePrompt, false)
		if err != nil {
			return promptError(err)
		}
		if !overwrite {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "If you want to open it you can do it with the load command.")
			fmt.Fprintf(out, "buildtree load %s\n", store.Path)
			return nil
		}
	}

	t := tree.New(rootName)
	s := session.New(t, store)
	if err := s.Save(); err != nil {
		return err
	}
	events.File.Save(store.Path, t.Count())
	return c.deps.Run(c.cfg.App, s)
}

// promptError drops a user abort so that the command exits quietly.
func promptError(err error) error {
	if aborted(err) {
		return nil
	}
	return fmt.Errorf("prompt: %w", err)
}
