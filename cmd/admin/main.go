// Command admin is the console for the agency admin: it manages price plans,
// portfolio projects and customer inquiries through the API.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/01moynul/agencyhub/internal/client"
	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:8080"

// app carries the state shared by every command.
type app struct {
	apiURL    string
	tokenPath string
	store     *client.Store
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage the agency site: plans, projects and inquiries",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	api := os.Getenv("AGENCY_API_URL")
	if api == "" {
		api = defaultAPI
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", api, "API base URL (env AGENCY_API_URL)")
	root.PersistentFlags().StringVar(&a.tokenPath, "token-file", "", "session file (default: user config dir)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newHashPasswordCmd(),
		newPlansCmd(a),
		newProjectsCmd(a),
		newQueriesCmd(a),
	)
	return root
}

func (a *app) init() error {
	if a.tokenPath == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		a.tokenPath = p
	}
	c := client.New(strings.TrimRight(a.apiURL, "/"), client.WithTokenStore(&client.FileTokenStore{Path: a.tokenPath}))
	a.store = client.NewStore(c)
	return nil
}

// requireLogin is the PreRunE of every admin-only command.
func (a *app) requireLogin(cmd *cobra.Command, args []string) error {
	if !a.store.Authenticated() {
		return fmt.Errorf("not logged in, run: admin login --email <email> --password <password>")
	}
	return nil
}
