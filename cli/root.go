package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"propbook/config"
	"propbook/models"
	"propbook/ui"
	"propbook/utils"
)

func Execute() {
	cmd := newRootCmd(config.Load)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs to open a session.
type app struct {
	loadConfig func() *config.Config
	debug      bool
}

func (a *app) open(cmd *cobra.Command) (*session, error) {
	cfg := a.loadConfig()
	if a.debug {
		cfg.Debug = true
	}
	logger := utils.NewLoggerTo(cmd.ErrOrStderr(), cmd.ErrOrStderr(), cfg.Debug)
	return openSession(commandContext(cmd), cfg, logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newRootCmd(loadConfig func() *config.Config) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	cmd := &cobra.Command{
		Use:          "propbook",
		Short:        "Propbook: buyers and properties for a property agent",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			// The TUI owns the terminal, so log lines would corrupt it.
			quiet := utils.Discard()
			return ui.Run(ui.Deps{
				Manager: s.manager,
				Logger:  quiet,
				Save: func(ctx context.Context, prefs *models.UserPrefs, buyers []*models.Buyer, properties []*models.Property) error {
					if err := s.prefs.Save(prefs); err != nil {
						return err
					}
					if err := s.store.SaveBuyers(ctx, buyers); err != nil {
						return err
					}
					return s.store.SaveProperties(ctx, properties)
				},
			})
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.AddCommand(
		buyerCmd(a),
		propertyCmd(a),
		importCmd(a),
		insightsCmd(a),
		exportCmd(a),
		prefsCmd(a),
	)
	return cmd
}
