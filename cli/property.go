package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"propbook/models"
	"propbook/view"
)

func propertyCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "property",
		Short: "Manage the property book",
	}
	c.AddCommand(propertyAddCmd(a), propertyEditCmd(a), propertyDeleteCmd(a), propertyListCmd(a))
	return c
}

type propertyFields struct {
	name, address, traits, ownerName, ownerPhone string
	price                                        float64
}

func (f *propertyFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "property name")
	cmd.Flags().StringVarP(&f.address, "address", "a", "", "street address")
	cmd.Flags().Float64Var(&f.price, "price", 0, "asking price")
	cmd.Flags().StringVar(&f.traits, "traits", "", "characteristics, separated by ';'")
	cmd.Flags().StringVar(&f.ownerName, "owner", "", "owner name")
	cmd.Flags().StringVar(&f.ownerPhone, "owner-phone", "", "owner phone number")
}

func (f *propertyFields) apply(cmd *cobra.Command, p *models.Property) error {
	set := cmd.Flags().Changed
	if set("name") {
		p.Name = strings.TrimSpace(f.name)
	}
	if set("address") {
		p.Address = strings.TrimSpace(f.address)
	}
	if set("price") {
		p.Price = f.price
	}
	if set("traits") {
		p.Characteristics = models.ParseCharacteristics(f.traits)
	}
	if set("owner") {
		p.OwnerName = strings.TrimSpace(f.ownerName)
	}
	if set("owner-phone") {
		p.OwnerPhone = strings.TrimSpace(f.ownerPhone)
	}
	return p.Validate()
}

func propertyAddCmd(a *app) *cobra.Command {
	var f propertyFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			p := &models.Property{CreatedAt: time.Now()}
			if err := f.apply(cmd, p); err != nil {
				return err
			}
			if err := s.manager.AddProperty(p); err != nil {
				return explain(err, "property")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New property added: %s\n", p)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func propertyEditCmd(a *app) *cobra.Command {
	var f propertyFields
	var d displayFlags

	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the property at INDEX of the displayed list",
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

			if err := showProperties(s.manager, d, nil); err != nil {
				return err
			}
			target, err := s.manager.DisplayedProperty(index)
			if err != nil {
				return err
			}
			edited := *target
			edited.Characteristics = append(models.Characteristics(nil), target.Characteristics...)
			if err := f.apply(cmd, &edited); err != nil {
				return err
			}
			if err := s.manager.SetProperty(target, &edited); err != nil {
				return explain(err, "property")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Edited property: %s\n", &edited)
			return nil
		},
	}
	f.register(cmd)
	d.register(cmd, "name, price or created")
	return cmd
}

func propertyDeleteCmd(a *app) *cobra.Command {
	var d displayFlags

	cmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the property at INDEX of the displayed list",
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

			if err := showProperties(s.manager, d, nil); err != nil {
				return err
			}
			target, err := s.manager.DisplayedProperty(index)
			if err != nil {
				return err
			}
			if err := s.manager.DeleteProperty(target); err != nil {
				return explain(err, "property")
			}
			if err := s.save(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted property: %s\n", target)
			return nil
		},
	}
	d.register(cmd, "name, price or created")
	return cmd
}

// propertyFilterFlags narrow a property listing beyond name keywords.
type propertyFilterFlags struct {
	priceRange string
	has        string
}

func (f propertyFilterFlags) predicate() (view.Predicate[*models.Property], error) {
	var preds []view.Predicate[*models.Property]
	if f.priceRange != "" {
		r, err := parseRange(f.priceRange)
		if err != nil {
			return nil, err
		}
		preds = append(preds, models.PropertyPriceWithin(*r))
	}
	if f.has != "" {
		preds = append(preds, models.PropertyHasCharacteristics(models.ParseCharacteristics(f.has)))
	}
	if len(preds) == 0 {
		return nil, nil
	}
	return allOf(preds), nil
}

func propertyListCmd(a *app) *cobra.Command {
	var d displayFlags
	var pf propertyFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			extra, err := pf.predicate()
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := showProperties(s.manager, d, extra); err != nil {
				return err
			}
			printProperties(cmd.OutOrStdout(), s.manager.CurrentlyDisplayedProperties())
			return nil
		},
	}
	d.register(cmd, "name, price or created")
	cmd.Flags().StringVar(&pf.priceRange, "price", "", "show only prices within MIN-MAX")
	cmd.Flags().StringVar(&pf.has, "has", "", "show only properties with all these characteristics, separated by ';'")
	return cmd
}
