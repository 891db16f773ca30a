package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/01moynul/agencyhub/internal/client"
	"github.com/spf13/cobra"
)

func newQueriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Review customer inquiries",
	}
	cmd.AddCommand(newQueriesListCmd(a), newQueriesRemoveCmd(a))
	return cmd
}

func newQueriesListCmd(a *app) *cobra.Command {
	var search, csvPath string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List inquiries, newest first",
		Args:    cobra.NoArgs,
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.LoadQueries(cmd.Context()); err != nil {
				return err
			}
			queries := client.FilterQueries(a.store.Queries(), search)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("failed to create csv: %w", err)
				}
				if err := client.WriteQueriesCSV(f, queries); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d inquiries to %s\n", len(queries), csvPath)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tPLAN\tPRICE\tSUBMITTED\tMESSAGE")
			for _, q := range queries {
				plan, price := "(removed)", "-"
				if q.PriceCard != nil {
					plan = q.PriceCard.Category
					price = strconv.FormatFloat(q.PriceCard.Price, 'f', -1, 64)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					q.ID, q.Email, plan, price, q.CreatedAt.Format("2006-01-02 15:04"), q.Message)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match email, message or plan")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the list to this CSV file instead")
	return cmd
}

func newQueriesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Remove an inquiry",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.RemoveQuery(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Query removed.")
			return nil
		},
	}
}
