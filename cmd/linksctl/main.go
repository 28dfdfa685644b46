// linksctl is the operational companion to the server: one-off admin tasks
// against the same database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yaricp/simple-short-links/internal/config"
	"github.com/yaricp/simple-short-links/internal/db"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/services"
)

func main() {
	root := &cobra.Command{
		Use:   "linksctl",
		Short: "Admin tooling for the short-links service",
	}

	root.AddCommand(createAdminCmd(), sweepCmd(), listLinksCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB loads config, connects and migrates; every subcommand starts here.
func openDB(ctx context.Context) (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		db.Close(gormDB)
		return nil, nil, err
	}
	return gormDB, cfg, nil
}

func createAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gormDB, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			if err := db.EnsureAdmin(ctx, gormDB, username, email, password); err != nil {
				return err
			}
			fmt.Printf("admin %q ready\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username (required)")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired links once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gormDB, cfg, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			sweeper := services.NewSweeper(repo.NewLinkRepo(gormDB), cfg.SweepInterval, logger)
			sweeper.Sweep(ctx)
			return nil
		},
	}
}

func listLinksCmd() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list-links",
		Short: "Print stored links",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gormDB, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			links, err := repo.NewLinkRepo(gormDB).List(ctx, nil, skip, limit)
			if err != nil {
				return err
			}
			for _, link := range links {
				fmt.Printf("%d\t%s\t%s\towner=%d\texpires=%s\n",
					link.ID, link.ShortText, link.Text, link.OwnerID, link.Expired.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum rows to print")

	return cmd
}
