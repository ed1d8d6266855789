package cli

import (
	"github.com/spf13/cobra"

	"propbook/services"
)

func insightsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Summarise both books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			svc := services.NewInsightService(s.logger)
			report := svc.Generate(s.manager.PropertyBook().Items(), s.manager.BuyerBook().Items())
			svc.Print(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
