package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"propbook/models"
)

func buyerCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "buyer",
		Short: "Manage the buyer book",
	}
	c.AddCommand(buyerAddCmd(a), buyerEditCmd(a), buyerDeleteCmd(a), buyerListCmd(a))
	return c
}

// buyerFields are the flags shared by add and edit.
type buyerFields struct {
	name, phone, email, address string
	priority, budget, wants     string
}

func (f *buyerFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "buyer name")
	cmd.Flags().StringVarP(&f.phone, "phone", "p", "", "phone number")
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&f.address, "address", "a", "", "home address")
	cmd.Flags().StringVar(&f.priority, "priority", "", "low, normal or high")
	cmd.Flags().StringVar(&f.budget, "budget", "", "budget as MIN-MAX, e.g. 500000-800000")
	cmd.Flags().StringVar(&f.wants, "wants", "", "desired characteristics, separated by ';'")
}

// apply copies every flag the user set onto b.
func (f *buyerFields) apply(cmd *cobra.Command, b *models.Buyer) error {
	set := cmd.Flags().Changed
	if set("name") {
		b.Name = strings.TrimSpace(f.name)
	}
	if set("phone") {
		b.Phone = strings.TrimSpace(f.phone)
	}
	if set("email") {
		b.Email = strings.TrimSpace(f.email)
	}
	if set("address") {
		b.Address = strings.TrimSpace(f.address)
	}
	if set("priority") || b.Priority == "" {
		p, err := models.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		b.Priority = p
	}
	if set("budget") {
		if f.budget == "" {
			b.PriceRange = nil
		} else {
			r, err := parseRange(f.budget)
			if err != nil {
				return err
			}
			b.PriceRange = r
		}
	}
	if set("wants") {
		b.DesiredCharacteristics = models.ParseCharacteristics(f.wants)
	}
	return b.Validate()
}

func buyerAddCmd(a *app) *cobra.Command {
	var f buyerFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a buyer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			b := &models.Buyer{CreatedAt: time.Now()}
			if err := f.apply(cmd, b); err != nil {
				return err
			}
			if err := s.manager.AddBuyer(b); err != nil {
				return explain(err, "buyer")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New buyer added: %s\n", b)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func buyerEditCmd(a *app) *cobra.Command {
	var f buyerFields
	var d displayFlags

	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the buyer at INDEX of the displayed list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := showBuyers(s.manager, d); err != nil {
				return err
			}
			target, err := s.manager.DisplayedBuyer(index)
			if err != nil {
				return err
			}
			edited := *target
			edited.DesiredCharacteristics = append(models.Characteristics(nil), target.DesiredCharacteristics...)
			if err := f.apply(cmd, &edited); err != nil {
				return err
			}
			if err := s.manager.SetBuyer(target, &edited); err != nil {
				return explain(err, "buyer")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Edited buyer: %s\n", &edited)
			return nil
		},
	}
	f.register(cmd)
	d.register(cmd, "name, priority or created")
	return cmd
}

func buyerDeleteCmd(a *app) *cobra.Command {
	var d displayFlags

	cmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the buyer at INDEX of the displayed list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := showBuyers(s.manager, d); err != nil {
				return err
			}
			target, err := s.manager.DisplayedBuyer(index)
			if err != nil {
				return err
			}
			if err := s.manager.DeleteBuyer(target); err != nil {
				return explain(err, "buyer")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted buyer: %s\n", target)
			return nil
		},
	}
	d.register(cmd, "name, priority or created")
	return cmd
}

func buyerListCmd(a *app) *cobra.Command {
	var d displayFlags
	var wants string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buyers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if wants != "" {
				if d.sort != "" {
					return fmt.Errorf("--wants cannot be combined with --sort")
				}
				if d.find != "" {
					return fmt.Errorf("--wants cannot be combined with --find")
				}
				if err := s.manager.UpdateFilteredBuyerList(models.BuyerWantsCharacteristic(wants)); err != nil {
					return err
				}
			}
			if err := showBuyers(s.manager, d); err != nil {
				return err
			}
			printBuyers(cmd.OutOrStdout(), s.manager.CurrentlyDisplayedBuyers())
			return nil
		},
	}
	d.register(cmd, "name, priority or created")
	cmd.Flags().StringVar(&wants, "wants", "", "show only buyers wanting this characteristic")
	return cmd
}
