package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/studynotes-backend/internal/app"
)

var (
	envFiles []string

	rootCmd = &cobra.Command{
		Use:           "studynotes",
		Short:         "Study notes API with AI summaries, quizzes and tutoring chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the durable store schema and exit",
		RunE:  runMigrate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	serveCmd.Flags().String("port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := app.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := app.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return app.Migrate(ctx, cfg)
}
