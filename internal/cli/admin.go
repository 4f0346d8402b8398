package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/sysutil"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Provision a back-office operator",
	Long: `Create an active back-office operator account.

The password is taken from --password or, when the flag is empty, from the
ADMIN_PASSWORD environment variable. An existing username is left unchanged.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password := sysutil.FirstNonEmpty(adminPassword, os.Getenv("ADMIN_PASSWORD"))
		if password == "" {
			return errors.New("a password is required: pass --password or set ADMIN_PASSWORD")
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)
		return createAdmin(cmd.Context(), db, adminUsername, adminEmail, password, cmd.OutOrStdout())
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "operator login")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "npo.arsenal.info@mail.ru", "operator email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "operator password (min 8 characters)")
	rootCmd.AddCommand(createAdminCmd)
}

func createAdmin(ctx context.Context, db *gorm.DB, username, email, password string, out io.Writer) error {
	svc := &services.AdminService{DB: db}
	u, err := svc.CreateAdmin(ctx, username, email, password)
	switch {
	case errors.Is(err, services.ErrAdminExists):
		fmt.Fprintf(out, "admin %q already exists\n", username)
		return nil
	case errors.Is(err, services.ErrWeakPassword):
		return errors.New("password must be at least 8 characters")
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "admin %q created\n", u.Username)
	return nil
}
