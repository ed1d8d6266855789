package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func prefsCmd(a *app) *cobra.Command {
	var buyersPath, propertiesPath string

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change where the books are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			mm := s.manager
			changed := false
			if cmd.Flags().Changed("buyers") {
				if err := mm.SetBuyerBookFilePath(buyersPath); err != nil {
					return err
				}
				changed = true
			}
			if cmd.Flags().Changed("properties") {
				if err := mm.SetPropertyBookFilePath(propertiesPath); err != nil {
					return err
				}
				changed = true
			}
			if changed {
				if err := s.prefs.Save(mm.UserPrefs()); err != nil {
					return err
				}
			}

			gui := mm.GuiSettings()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Preferences file : %s\n", s.prefs.Path())
			fmt.Fprintf(w, "Buyer book       : %s\n", mm.BuyerBookFilePath())
			fmt.Fprintf(w, "Property book    : %s\n", mm.PropertyBookFilePath())
			fmt.Fprintf(w, "Window           : %dx%d\n", gui.WindowWidth, gui.WindowHeight)
			return nil
		},
	}
	cmd.Flags().StringVar(&buyersPath, "buyers", "", "new buyer book file")
	cmd.Flags().StringVar(&propertiesPath, "properties", "", "new property book file")
	return cmd
}
