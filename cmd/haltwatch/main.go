package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/NasaVasa/haltwatch/internal/app"
	"github.com/NasaVasa/haltwatch/internal/config"
	"github.com/NasaVasa/haltwatch/internal/delivery/lambda"
	"github.com/NasaVasa/haltwatch/internal/domain"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "haltwatch",
		Short:        "Daily ASX announcements ingestion and trading halt monitoring",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newLambdaCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily feed once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Shutdown()

			today := application.Today()
			if date != "" {
				today, err = domain.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			body, err := application.Run(cmd.Context(), today)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "run date (YYYY-MM-DD), defaults to today in TIMEZONE")
	return cmd
}

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the daily feed as an AWS Lambda handler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Shutdown()

			handler := lambda.NewHandler(application, application.Logger())
			awslambda.StartWithOptions(handler.Handle, awslambda.WithContext(cmd.Context()))
			return nil
		},
	}
}

func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return nil, err
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize app:", err)
		return nil, err
	}
	return application, nil
}
