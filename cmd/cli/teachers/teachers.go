package teachers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/config"
	"github.com/crucial707/schoolboard/internal/db"
	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/repo"
	"github.com/spf13/cobra"
)

// UserCreator stores a teacher account.
type UserCreator interface {
	Create(ctx context.Context, u models.User) error
}

// InitTeachers registers teacher provisioning commands. These talk to the
// database directly (DB_* environment variables), not to the API.
func InitTeachers(rootCmd *cobra.Command) {
	teachersCmd := &cobra.Command{
		Use:   "teachers",
		Short: "Provision teacher accounts (direct database access)",
	}
	teachersCmd.AddCommand(addTeacherCmd(openUserRepo))
	rootCmd.AddCommand(teachersCmd)
}

func openUserRepo() (UserCreator, func(), error) {
	cfg := config.Load()
	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass, 2, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return repo.NewUserRepo(database), func() { database.Close() }, nil
}

func addTeacherCmd(open func() (UserCreator, func(), error)) *cobra.Command {
	var username, displayName, role, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a teacher account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}
			if displayName == "" {
				displayName = username
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			users, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			err = users.Create(ctx, models.User{
				Username:     username,
				DisplayName:  displayName,
				Role:         role,
				PasswordHash: hash,
			})
			if errors.Is(err, repo.ErrDuplicate) {
				return fmt.Errorf("teacher %q already exists", username)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Teacher %s added.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&displayName, "display-name", "", "name shown to students (defaults to username)")
	cmd.Flags().StringVar(&role, "role", "teacher", "free-form role label")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}
