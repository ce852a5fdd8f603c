/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/seyaul/hana-auth/config"
	"github.com/seyaul/hana-auth/internal/db"
	"github.com/seyaul/hana-auth/internal/events"
	"github.com/seyaul/hana-auth/internal/services"
	"github.com/seyaul/hana-auth/internal/store"
	"github.com/seyaul/hana-auth/types"
	"github.com/spf13/cobra"
)

var (
	bootstrapUsername string
	bootstrapPassword string
)

// bootstrapCmd creates the first admin account. Every later user is
// created through the authenticated admin API.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the initial admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if bootstrapUsername == "" || bootstrapPassword == "" {
			return fmt.Errorf("--username and --password are required")
		}

		cfg := config.LoadConfig()
		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		userService := services.NewUserService(store.NewUserRepository(dbConn), events.NewNotifier(nil))
		user, err := userService.Create(cmd.Context(), bootstrapUsername, bootstrapPassword, types.RoleAdmin)
		if err != nil {
			if services.IsConflict(err) {
				return fmt.Errorf("user %q already exists", bootstrapUsername)
			}
			return fmt.Errorf("create admin: %w", err)
		}

		fmt.Printf("created admin %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	bootstrapCmd.Flags().StringVar(&bootstrapUsername, "username", "", "admin username")
	bootstrapCmd.Flags().StringVar(&bootstrapPassword, "password", "", "admin password")
}
