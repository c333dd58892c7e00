package cli

import (
	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/spf13/cobra"
)

func (c *commands) loadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <filePath>",
		Short: "Open an existing tree for editing",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runLoad,
	}
}

func (c *commands) runLoad(cmd *cobra.Command, args []string) error {
	s, ok, err := c.open(cmd, args[0])
	if err != nil || !ok {
		return err
	}
	return c.deps.Run(c.cfg.App, s)
}

// open loads path into a session. A missing file is reported on stdout and
// yields ok == false without an error.
func (c *commands) open(cmd *cobra.Command, path string) (*session.Session, bool, error) {
	store := document.NewStore(path)
	if !store.Exists() {
		printMissing(cmd.OutOrStdout(), store.Path)
		return nil, false, nil
	}
	t, err := store.Load()
	if err != nil {
		events.File.Error(store.Path, err)
		return nil, false, err
	}
	events.File.Load(store.Path, t.Count())
	return session.New(t, store), true, nil
}
