// Package cli wires the checklist engine, storage, and TUI into a cobra
// command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

type options struct {
	file       string
	dir        string
	configPath string
	logLevel   string
	quiet      bool
}

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	var sess *session

	root := &cobra.Command{
		Use:   "todo",
		Short: "Edit a markdown checklist from the command line",
		Long: `todo edits a checklist kept as a markdown file, one task per line:

  - [ ] pending task
  - [x] finished task

Tasks are addressed by 1-based index. Commands that take a range accept
comma-separated indices and inclusive spans such as "1,3-4". Indices past
the end of the list are clamped to the last task.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, out, errOut)
			if err != nil {
				return err
			}
			sess = s
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.list(formatText)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "checklist file (default from config, todo.md)")
	pf.StringVarP(&opts.dir, "dir", "C", "", "resolve the checklist file relative to this directory")
	pf.StringVar(&opts.configPath, "config", "", "config file (default $TODO_CONFIG or the user config dir)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")

	current := func() *session { return sess }
	root.AddCommand(
		listCmd(current),
		addCmd(current),
		markCmd(current, "do", "Mark tasks done", true),
		markCmd(current, "undo", "Mark tasks pending", false),
		rmCmd(current),
		mvCmd(current),
		logCmd(current),
		uiCmd(current),
	)
	return root
}

// Execute runs the command tree against args.
func Execute(args []string, out, errOut io.Writer) error {
	root := NewRootCmd(out, errOut)
	root.SetArgs(args)
	return root.Execute()
}
