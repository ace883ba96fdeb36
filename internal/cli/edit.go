package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tickmd/internal/checklist"
)

func addCmd(sess func() *session) *cobra.Command {
	var at int
	cmd := &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add a pending task",
		Long:    "Add a pending task at the end of the list, or at --at. An index past the end appends.",
		Example: "  todo add Buy milk\n  todo add --at 1 Call the bank",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sess()
			text := strings.Join(args, " ")
			if strings.ContainsAny(text, "\r\n") {
				return errors.New("task text must be a single line")
			}
			list, err := s.load()
			if err != nil {
				return err
			}
			var idx int
			if cmd.Flags().Changed("at") {
				idx = list.AddAt(text, at)
			} else {
				idx = list.Add(text)
			}
			if err := s.commit(list, "add", fmt.Sprintf("%d %s", idx, text)); err != nil {
				return err
			}
			s.printf("%d\n", idx)
			return nil
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "1-based position to insert at")
	return cmd
}

// markCmd builds do (done=true) and undo (done=false).
func markCmd(sess func() *session, name, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <range...>",
		Short:   short,
		Example: fmt.Sprintf("  todo %s 3\n  todo %s 1,3-4", name, name),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, expr, err := parseSelectionArgs(args)
			if err != nil {
				return err
			}
			return sess().edit(name, expr, func(list *checklist.Checklist) {
				if done {
					list.Do(sel)
				} else {
					list.Undo(sel)
				}
			})
		},
	}
}

func rmCmd(sess func() *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <range...>",
		Aliases: []string{"remove"},
		Short:   "Remove tasks",
		Example: "  todo rm 2\n  todo rm 1,3-4",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, expr, err := parseSelectionArgs(args)
			if err != nil {
				return err
			}
			return sess().edit("rm", expr, func(list *checklist.Checklist) {
				list.Remove(sel)
			})
		},
	}
}

func mvCmd(sess func() *session) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <from> <to>",
		Aliases: []string{"move"},
		Short:   "Move a task to another position",
		Example: "  todo mv 4 1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return sess().edit("mv", args[0]+" "+args[1], func(list *checklist.Checklist) {
				list.Move(from, to)
			})
		},
	}
}

// parseSelectionArgs joins positional args with commas so "do 1 3-4" and
// "do 1,3-4" mean the same thing.
func parseSelectionArgs(args []string) (checklist.Selection, string, error) {
	expr := strings.Join(args, ",")
	sel, err := checklist.ParseSelection(expr)
	if err != nil {
		return nil, "", err
	}
	return sel, expr, nil
}

func parseIndex(s string) (int, error) {
	n, err := checklist.ParseIndex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return n, nil
}
