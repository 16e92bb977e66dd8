package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor"
)

func jsonCmd() *cobra.Command {
	var (
		pretty  bool
		asYAML  bool
		reverse bool
	)

	cmd := cobra.Command{
		Use:   "json <file>",
		Short: "Print the cells of a notebook as JSON.",
		Long: `Json prints the decoded cells, including the metadata needed to restore
the source. With --reverse, it reads such JSON and prints the notebook source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(store *storage.FS, logger *zap.Logger) error {
				data, err := readSource(cmd, store, args[0])
				if err != nil {
					return err
				}

				if reverse {
					var notebook editor.Notebook
					if err := json.Unmarshal(data, &notebook); err != nil {
						return errors.Wrap(err, "failed to decode notebook JSON")
					}
					_, err := cmd.OutOrStdout().Write(editor.Serialize(&notebook, editor.Options{Logger: logger}))
					return errors.Wrap(err, "failed to write result")
				}

				notebook, err := deserialize(data, logger)
				if err != nil {
					return err
				}

				var out []byte
				switch {
				case asYAML:
					out, err = yaml.Marshal(notebook)
				case pretty:
					out, err = json.MarshalIndent(notebook, "", "  ")
					out = append(out, '\n')
				default:
					out, err = json.Marshal(notebook)
					out = append(out, '\n')
				}
				if err != nil {
					return errors.Wrap(err, "failed to encode notebook")
				}

				_, err = cmd.OutOrStdout().Write(out)
				return errors.Wrap(err, "failed to write result")
			})
		},
	}

	setDefaultFlags(&cmd)

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output.")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON.")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Read notebook JSON and print the markdown source.")

	return &cmd
}
