package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

type taskView struct {
	Index int    `json:"index" yaml:"index"`
	Done  bool   `json:"done" yaml:"done"`
	Text  string `json:"text" yaml:"text"`
}

func listCmd(sess func() *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the checklist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess().list(format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, markdown, json, yaml")
	return cmd
}

func (s *session) list(format string) error {
	list, err := s.load()
	if err != nil {
		return err
	}
	tasks := list.Tasks()
	views := make([]taskView, len(tasks))
	for i, t := range tasks {
		views[i] = taskView{Index: i + 1, Done: t.Done, Text: t.Text}
	}

	switch format {
	case formatText, "":
		if len(views) == 0 {
			s.printf("No tasks.\n")
			return nil
		}
		for _, v := range views {
			mark := " "
			if v.Done {
				mark = "x"
			}
			s.printf("%3d [%s] %s\n", v.Index, mark, v.Text)
		}
	case formatMarkdown, "md":
		if list.Len() > 0 {
			s.printf("%s\n", list.Serialize())
		}
	case formatJSON:
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return err
		}
		s.printf("%s\n", data)
	case formatYAML:
		data, err := yaml.Marshal(views)
		if err != nil {
			return err
		}
		s.printf("%s", data)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
