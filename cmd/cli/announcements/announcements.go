package announcements

import (
	"fmt"
	"time"

	"github.com/crucial707/schoolboard/cmd/cli/api"
	"github.com/crucial707/schoolboard/cmd/cli/config"
	"github.com/crucial707/schoolboard/cmd/cli/output"
	"github.com/spf13/cobra"
)

type announcement struct {
	ID             string     `json:"id"`
	Message        string     `json:"message"`
	StartDate      *time.Time `json:"start_date"`
	ExpirationDate time.Time  `json:"expiration_date"`
	CreatedBy      string     `json:"created_by"`
}

// ==========================
// Init Announcements
// ==========================
func InitAnnouncements(rootCmd *cobra.Command) {

	announcementsCmd := &cobra.Command{
		Use:     "announcements",
		Aliases: []string{"ann"},
		Short:   "Manage announcements",
	}

	announcementsCmd.AddCommand(
		listAnnouncementsCmd(),
		createAnnouncementCmd(),
		updateAnnouncementCmd(),
		deleteAnnouncementCmd(),
	)

	rootCmd.AddCommand(announcementsCmd)
}

// ==========================
// LIST
// ==========================
func listAnnouncementsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []announcement
			if err := api.Call("GET", "/announcements", "", nil, &list); err != nil {
				return err
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, a := range list {
				start := "-"
				if a.StartDate != nil {
					start = a.StartDate.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []interface{}{
					a.ID, a.Message, start, a.ExpirationDate.Local().Format("2006-01-02 15:04"), a.CreatedBy,
				})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Message", "Starts", "Expires", "By"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createAnnouncementCmd() *cobra.Command {
	var message, starts, expires string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an announcement",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := config.LoadUser()
			if err != nil {
				return err
			}

			payload := map[string]string{
				"message":         message,
				"expiration_date": expires,
			}
			if starts != "" {
				payload["start_date"] = starts
			}

			var out struct {
				ID string `json:"id"`
			}
			if err := api.Call("POST", "/announcements", user, payload, &out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Announcement created: %s\n", out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "announcement text")
	cmd.Flags().StringVar(&starts, "starts", "", "start date (RFC 3339 or YYYY-MM-DD); omit to show immediately")
	cmd.Flags().StringVar(&expires, "expires", "", "expiration date (RFC 3339 or YYYY-MM-DD)")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateAnnouncementCmd() *cobra.Command {
	var message, starts, expires string
	var clearStart bool

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fields of an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := config.LoadUser()
			if err != nil {
				return err
			}

			payload := map[string]any{}
			if cmd.Flags().Changed("message") {
				payload["message"] = message
			}
			if cmd.Flags().Changed("expires") {
				payload["expiration_date"] = expires
			}
			switch {
			case clearStart:
				payload["start_date"] = nil
			case cmd.Flags().Changed("starts"):
				payload["start_date"] = starts
			}

			if err := api.Call("PUT", "/announcements/"+args[0], user, payload, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Announcement updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "new announcement text")
	cmd.Flags().StringVar(&starts, "starts", "", "new start date")
	cmd.Flags().StringVar(&expires, "expires", "", "new expiration date")
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "remove the start date")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteAnnouncementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := config.LoadUser()
			if err != nil {
				return err
			}
			if err := api.Call("DELETE", "/announcements/"+args[0], user, nil, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Announcement deleted")
			return nil
		},
	}
}
