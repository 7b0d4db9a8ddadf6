package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/services"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// opener returns the repository the commands operate on plus a cleanup func
type opener func(ctx context.Context) (repository.Repository, func(), error)

func main() {
	if err := logging.InitLogger(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logging.Logger.Sync()

	if err := newRootCmd(openConfiguredRepository, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openConfiguredRepository opens the repository selected by the environment
func openConfiguredRepository(ctx context.Context) (repository.Repository, func(), error) {
	if err := config.LoadConfig(); err != nil {
		return nil, nil, err
	}
	cfg := config.AppConfig
	cleanup := func() {}
	if cfg.StorageBackend == repository.BackendMongo {
		if err := config.InitMongoDB(); err != nil {
			return nil, nil, err
		}
		cleanup = config.DisconnectMongoDB
	}
	repo, err := repository.FromConfig(cfg, logging.Logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "civicctl",
		Short:         "Operate a CivicReport deployment",
		Long:          "civicctl seeds development users, manages administrators and runs moderation passes against the configured store.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newSeedCmd(open), newAdminCmd(open), newModerateCmd(open))
	return root
}

// withRepository opens the store, runs fn and releases the store again
func withRepository(cmd *cobra.Command, open opener, fn func(ctx context.Context, repo repository.Repository) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	repo, cleanup, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer cleanup()
	return fn(ctx, repo)
}

func newSeedCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the development users when the store has none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd, open, func(ctx context.Context, repo repository.Repository) error {
				seeded, err := services.SeedDevUsers(ctx, repo, logging.Logger)
				if err != nil {
					return err
				}
				if seeded {
					cmd.Printf("seeded development users (admin %s, user %s)\n", services.DevAdminPhone, services.DevUserPhone)
				} else {
					cmd.Println("users already exist, nothing seeded")
				}
				return nil
			})
		},
	}
}

func newAdminCmd(open opener) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Grant or revoke administrator rights",
	}

	setAdmin := func(isAdmin bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, open, func(ctx context.Context, repo repository.Repository) error {
				user, err := services.SetAdmin(ctx, repo, args[0], isAdmin)
				if err != nil {
					return err
				}
				cmd.Printf("%s admin=%t\n", user.Phone, user.IsAdmin)
				return nil
			})
		}
	}

	admin.AddCommand(
		&cobra.Command{
			Use:   "promote <phone>",
			Short: "Make the user with this phone an administrator",
			Args:  cobra.ExactArgs(1),
			RunE:  setAdmin(true),
		},
		&cobra.Command{
			Use:   "demote <phone>",
			Short: "Remove administrator rights from the user with this phone",
			Args:  cobra.ExactArgs(1),
			RunE:  setAdmin(false),
		},
	)
	return admin
}

func newModerateCmd(open opener) *cobra.Command {
	var batchSize int
	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Run one moderation pass over pending reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd, open, func(ctx context.Context, repo repository.Repository) error {
				worker := services.NewModerationWorker(repo, services.ModerationConfig{BatchSize: batchSize}, logging.Logger)
				processed, err := worker.ProcessBatch(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("moderated %d report(s)\n", processed)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 20, "Maximum number of pending reports to moderate")
	return cmd
}
