package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"propbook/book"
	"propbook/models"
	"propbook/scraper/listings"
	"propbook/services"
)

func importCmd(a *app) *cobra.Command {
	var pages, perPage int

	cmd := &cobra.Command{
		Use:   "import SEARCH_URL",
		Short: "Import properties from a listing site's search results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if cmd.Flags().Changed("pages") {
				s.cfg.PagesToImport = pages
			}
			if cmd.Flags().Changed("per-page") {
				s.cfg.ListingsPerPage = perPage
			}

			ctx := commandContext(cmd)
			raw, err := listings.New(s.cfg, s.logger).Import(ctx, args[0])
			if err != nil && len(raw) == 0 {
				return err
			}

			cleaned := services.NewCleaner(s.logger).Clean(raw)
			added := addImported(s, cleaned)
			if added == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No new properties imported.")
				return nil
			}
			if err := s.save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new properties (%d listings found).\n", added, len(raw))
			return nil
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 1, "result pages to walk")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "listings to take per page")
	return cmd
}

// addImported adds every cleaned property the book does not already hold
// and returns how many were added.
func addImported(s *session, properties []*models.Property) int {
	added := 0
	for _, p := range properties {
		err := s.manager.AddProperty(p)
		switch {
		case err == nil:
			added++
		case errors.Is(err, book.ErrDuplicateRecord):
			s.logger.Debug("[import] Already in book: %s", p.IdentityKey())
		default:
			s.logger.Warn("[import] Skipping %s: %v", p.Name, err)
		}
	}
	return added
}
