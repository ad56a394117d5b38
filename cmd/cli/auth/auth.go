package auth

import (
	"fmt"
	"net/url"

	"github.com/crucial707/schoolboard/cmd/cli/api"
	"github.com/crucial707/schoolboard/cmd/cli/config"
	"github.com/spf13/cobra"
)

type profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// InitAuth registers login, logout and whoami on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd(), whoamiCmd())
}

// loginCmd verifies the password with the API and stores the username locally.
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a teacher",
		Long:  "Verify credentials with the API and remember the username for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}

			q := url.Values{"username": {username}, "password": {password}}
			var p profile
			if err := api.Call("POST", "/auth/login?"+q.Encode(), "", nil, &p); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}

			if err := config.SaveUser(p.Username); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", p.DisplayName, p.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Teacher username")
	cmd.Flags().StringVar(&password, "password", "", "Teacher password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored username",
		RunE: func(cmd *cobra.Command, args []string) error {
			had, err := config.ClearUser()
			if err != nil {
				return err
			}
			if !had {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// whoamiCmd checks that the stored username still names a teacher account.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in teacher",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := config.LoadUser()
			if err != nil {
				return err
			}
			var p profile
			if err := api.Call("GET", "/auth/check-session?"+url.Values{"username": {user}}.Encode(), "", nil, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", p.Username, p.DisplayName, p.Role)
			return nil
		},
	}
}
