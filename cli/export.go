package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"propbook/storage"
)

func exportCmd(a *app) *cobra.Command {
	var bookName, out string
	var d displayFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the displayed buyers or properties to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			var exporter storage.Exporter = storage.NewCSVExporter(out)
			switch bookName {
			case "buyers":
				if err := showBuyers(s.manager, d); err != nil {
					return err
				}
				list := s.manager.CurrentlyDisplayedBuyers()
				if err := exporter.ExportBuyers(list.Items()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d buyers to %s\n", list.Len(), out)
			case "properties":
				if err := showProperties(s.manager, d, nil); err != nil {
					return err
				}
				list := s.manager.CurrentlyDisplayedProperties()
				if err := exporter.ExportProperties(list.Items()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d properties to %s\n", list.Len(), out)
			default:
				return fmt.Errorf("unknown book %q (want buyers or properties)", bookName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bookName, "book", "buyers", "buyers or properties")
	cmd.Flags().StringVarP(&out, "out", "o", "export.csv", "output CSV path")
	d.register(cmd, "name, priority or created for buyers; name, price or created for properties")
	return cmd
}
