package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emcarter/chief-rota/internal/config"
	"github.com/emcarter/chief-rota/pkg/clients/slackclient"
	"github.com/emcarter/chief-rota/pkg/core/schedule"
	"github.com/emcarter/chief-rota/pkg/core/services"
	"github.com/emcarter/chief-rota/pkg/db"
	"github.com/emcarter/chief-rota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	notifier *slackclient.Client
	database *db.DB
	sched    *schedule.Schedule
	logger   *zap.Logger
	rng      *rand.Rand
	ctx      context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "chief-rota",
		Short: "Chief Rota CLI - Run the weekly support rotation",
		Long:  `A CLI tool for running the weekly Support Chief rotation: selecting the chief and backup, recording the assignment, and notifying the team channels.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(remindCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp(command string) error {
	var err error
	app = &App{
		ctx: context.Background(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	app.logger, err = logging.InitLogger(command)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("command", command))

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	app.sched, err = schedule.New(app.cfg.RotationRule)
	if err != nil {
		return fmt.Errorf("failed to build rotation schedule: %w", err)
	}

	app.notifier = slackclient.NewClient(env.SlackBotToken, app.cfg.PublicChannelID, app.cfg.InternalChannelID)

	app.logger.Debug("Connecting to database")
	app.database, err = db.NewDB(app.ctx, env.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.logger.Debug("Application initialized")

	return nil
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign",
		Short: "Run the weekly assignment for the upcoming rotation week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := services.AssignWeekly(
				app.ctx,
				app.database,
				app.notifier,
				app.sched,
				app.logger,
				app.rng,
				time.Now(),
			)
			if err != nil {
				return err
			}

			switch outcome.Kind {
			case services.OutcomeCreated:
				fmt.Printf("\n✓ Assignment created for week of %s\n\n", outcome.Assignment.WeekStart.Format("2006-01-02"))
				fmt.Printf("Assignment ID: %s\n", outcome.Assignment.ID)
				fmt.Printf("Chief:  %s\n", outcome.Assignment.ChiefID)
				fmt.Printf("Backup: %s\n\n", outcome.Assignment.BackupID)
			case services.OutcomeAlreadyExists:
				fmt.Printf("\nAssignment already exists for week of %s - nothing to do.\n\n", outcome.WeekStart.Format("2006-01-02"))
			case services.OutcomeInsufficientCandidates:
				return fmt.Errorf("no eligible members to assign (%d candidates)", outcome.Candidates)
			}

			return nil
		},
	}
}

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send the current week's chief a reminder in the internal channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			withHandover, _ := cmd.Flags().GetBool("handover")

			if err := services.Remind(
				app.ctx,
				app.database,
				app.notifier,
				app.sched,
				app.logger,
				time.Now(),
				withHandover,
			); err != nil {
				return err
			}

			fmt.Printf("\n✓ Reminder sent.\n\n")

			return nil
		},
	}

	cmd.Flags().Bool("handover", false, "Also send a handover note pairing this week's chief with next week's")

	return cmd
}
