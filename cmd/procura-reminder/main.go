// Package main provides the stale-session reminder sweep daemon.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	pkgcmd "github.com/procura-ai/procura/pkg/cmd"
	"github.com/procura-ai/procura/pkg/log"
	"github.com/procura-ai/procura/pkg/reminder"
)

func main() {
	logger := log.WithModule("reminder")

	cmd := &cli.Command{
		Name:                  "procura-reminder",
		Usage:                 "Nudge users with stale sourcing sessions",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for state persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel)",
				Value:   "kafka",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "Cron expression for the sweep",
				Value:   "*/15 * * * *",
				Sources: cli.EnvVars("REMINDER_SCHEDULE"),
			},
			&cli.DurationFlag{
				Name:    "idle-threshold",
				Usage:   "How long a session may be idle before a nudge",
				Value:   24 * time.Hour,
				Sources: cli.EnvVars("IDLE_THRESHOLD"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Procura reminder")

			persistence := pkgcmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := pkgcmd.NewEventBus(command.String("event-bus"), "procura-reminder", logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			sweep := reminder.NewReminder(logger, persistence, eventBus, command.Duration("idle-threshold"))

			if err := sweep.Start(ctx, command.String("schedule")); err != nil {
				return err
			}

			defer sweep.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-stop:
			case <-ctx.Done():
			}

			logger.InfoContext(ctx, "Shutting down Procura reminder")

			return nil
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
