package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/storage"
)

func printCmd() *cobra.Command {
	var (
		fileName   string
		withAddons bool
	)

	cmd := cobra.Command{
		Use:   "print <id>",
		Short: "Print the content of a cell.",
		Long:  "Print will display the content of the cell with the given id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(store *storage.FS, logger *zap.Logger) error {
				data, err := readSource(cmd, store, fileName)
				if err != nil {
					return err
				}

				notebook, err := deserialize(data, logger)
				if err != nil {
					return err
				}

				cell, ok := notebook.FindCell(args[0])
				if !ok {
					return errors.Errorf("cell with id %q not found", args[0])
				}

				var b strings.Builder
				_, _ = b.WriteString(cell.Value)
				_, _ = b.WriteString("\n")

				if withAddons {
					for _, addon := range cell.Addons() {
						_, _ = b.WriteString("\n# " + addon.Type + "\n")
						_, _ = b.WriteString(addon.Content)
						_, _ = b.WriteString("\n")
					}
				}

				_, err = cmd.OutOrStdout().Write([]byte(b.String()))
				return errors.Wrap(err, "failed to write to stdout")
			})
		},
	}

	setDefaultFlags(&cmd)

	cmd.Flags().StringVarP(&fileName, "filename", "f", "README.md", "A name of the notebook file.")
	cmd.Flags().BoolVar(&withAddons, "addons", false, "Print the addons attached to the cell.")

	return &cmd
}
