package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/01moynul/agencyhub/internal/client"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List, add and remove portfolio projects",
	}
	cmd.AddCommand(newProjectsListCmd(a), newProjectsAddCmd(a), newProjectsRemoveCmd(a))
	return cmd
}

func newProjectsListCmd(a *app) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.LoadProjects(cmd.Context()); err != nil {
				return err
			}
			projects := client.FilterProjects(a.store.Projects(), search, category)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tLINK\tIMAGE")
			for _, p := range projects {
				link := ""
				if p.Link != nil {
					link = *p.Link
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Category, p.Title, link, p.Image)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match title, description or category")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	return cmd
}

func newProjectsAddCmd(a *app) *cobra.Command {
	var p client.NewProject
	var imagePath string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a project with its screenshot",
		Args:    cobra.NoArgs,
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			p.Image = f
			p.ImageName = imagePath
			if err := a.store.AddProject(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project added.")
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Title, "title", "", "project title")
	cmd.Flags().StringVar(&p.Description, "description", "", "project description")
	cmd.Flags().StringVar(&p.Category, "category", "", "project category")
	cmd.Flags().StringVar(&p.Link, "link", "", "live site URL")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the screenshot")
	for _, name := range []string{"title", "description", "category", "image"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newProjectsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Remove a project and its image",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.RemoveProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project removed.")
			return nil
		},
	}
}
