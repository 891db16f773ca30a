package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/01moynul/agencyhub/internal/client"
	"github.com/spf13/cobra"
)

func newPlansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List, add and remove price plans",
	}
	cmd.AddCommand(newPlansListCmd(a), newPlansAddCmd(a), newPlansRemoveCmd(a))
	return cmd
}

func newPlansListCmd(a *app) *cobra.Command {
	var search, category, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List price plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.LoadPlans(cmd.Context()); err != nil {
				return err
			}
			plans := client.SortPlans(client.FilterPlans(a.store.Plans(), search, category), order)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tPRICE\tFEATURES\tDESCRIPTION")
			for _, p := range plans {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Category, strconv.FormatFloat(p.Price, 'f', -1, 64),
					strings.Join(p.Features, ", "), p.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match category, description or features")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&order, "sort", "", "price-asc, price-desc or newest")
	return cmd
}

func newPlansAddCmd(a *app) *cobra.Command {
	var plan client.NewPlan

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a price plan",
		Args:    cobra.NoArgs,
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plan.Price < 0 {
				return fmt.Errorf("price must not be negative")
			}
			if err := a.store.AddPlan(cmd.Context(), plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Price plan added. %d plans now listed.\n", len(a.store.Plans()))
			return nil
		},
	}
	cmd.Flags().Float64Var(&plan.Price, "price", 0, "plan price")
	cmd.Flags().StringVar(&plan.Category, "category", "", "plan category, e.g. Starter")
	cmd.Flags().StringVar(&plan.Description, "description", "", "plan description")
	cmd.Flags().StringArrayVar(&plan.Features, "feature", nil, "a feature line (repeatable)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newPlansRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Remove a price plan",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.RemovePlan(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Price plan removed.")
			return nil
		},
	}
}
