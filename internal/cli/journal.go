package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tickmd/internal/storage"
)

func logCmd(sess func() *session) *cobra.Command {
	var limit int
	var all bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent edits from the journal",
		Long:  "Show recent edits recorded in the journal. By default only edits to the current checklist file are shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sess()
			j, err := storage.Open(s.cfg.JournalPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			entries, err := j.Recent(0)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			shown := 0
			for _, e := range entries {
				if limit > 0 && shown >= limit {
					break
				}
				if !all && e.File != s.path {
					continue
				}
				line := fmt.Sprintf("%s  %-4s %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Op, e.Args)
				if all {
					line += "  (" + filepath.Base(e.File) + ")"
				}
				s.printf("%s\n", line)
				shown++
			}
			if shown == 0 {
				s.printf("No journal entries.\n")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")
	cmd.Flags().BoolVar(&all, "all", false, "include edits to every checklist file")
	return cmd
}
