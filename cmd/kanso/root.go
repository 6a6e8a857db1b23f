package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/render"
	"github.com/comitanigiacomo/kanso-balance/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-balance/internal/app"
	"github.com/comitanigiacomo/kanso-balance/internal/config"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kanso",
		Short: "Kanso Balance - life category scoring and streaks",
		Long: `Kanso Balance scores life categories from completed tasks and habits,
tracks streaks and keeps a monthly history of scores.

Examples:
  # Run the HTTP API (reads .env and the environment)
  kanso serve

  # Print the active category catalog as YAML
  kanso categories --set wheel

  # Render a life wheel to a file
  kanso wheel --score health=8 --score finance=3 --out wheel.svg`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newCategoriesCmd(),
		newWheelCmd(),
		newVersionCmd(),
	)

	return root
}

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}

			cfg, err := config.Load(files...)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			application, err := app.New(cfg, nil)
			if err != nil {
				return err
			}
			defer application.Close()

			log.Printf("Categories: %d, scoring mode: %s", application.Catalog.Len(), cfg.ScoringMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return application.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before reading the environment (default .env)")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	var set, file string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print a category catalog as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				catalog *domain.Catalog
				err     error
			)
			if file != "" {
				catalog, err = domain.LoadCatalogFile(file)
			} else {
				catalog, err = domain.CatalogByName(set)
			}
			if err != nil {
				return err
			}

			out, err := domain.MarshalCatalog(catalog)
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&set, "set", domain.CatalogDefault, "Built-in catalog: default|wheel")
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog file (overrides --set)")
	return cmd
}

func newWheelCmd() *cobra.Command {
	var (
		scores []string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Render the life wheel as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			svc := services.NewWheelService(repository.NewInMemoryWheelRepository(), domain.WheelCatalog())
			for _, raw := range scores {
				area, value, err := parseScoreFlag(raw)
				if err != nil {
					return err
				}
				if err := svc.Rate(ctx, area, value); err != nil {
					return fmt.Errorf("%s: %w", area, err)
				}
			}

			g, err := svc.Chart(ctx, radar.DefaultChart())
			if err != nil {
				return err
			}
			svg := render.WheelSVG(g)

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
				return err
			}
			if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			avg, err := svc.Average(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (average %s)\n", out, services.FormatAverage(avg))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&scores, "score", nil, "Area rating as area=value, repeatable")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func parseScoreFlag(raw string) (string, int, error) {
	area, value, ok := strings.Cut(raw, "=")
	if !ok || area == "" {
		return "", 0, fmt.Errorf("invalid score %q (want area=value)", raw)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return "", 0, fmt.Errorf("invalid score %q: %w", raw, err)
	}
	return area, n, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "kanso", version)
		},
	}
}
