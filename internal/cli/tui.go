package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"tickmd/internal/ui"
)

func uiCmd(sess func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Edit the checklist interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sess()
			list, err := s.load()
			if err != nil {
				return err
			}
			return ui.Run(list, s.cfg, filepath.Base(s.path), func(op, args string) error {
				return s.commit(list, op, args)
			})
		},
	}
}
