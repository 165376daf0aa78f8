package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/greenside-club/scoring/app"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "scoring",
		Usage: "club scorecard ingestion and team match-play scoring",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: runServe,
			},
			{
				Name:  "import",
				Usage: "import one scorecard file and print the batch report",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "event", Required: true, Usage: "event ID to import into"},
					&cli.StringFlag{Name: "file", Required: true, Usage: "scorecard file (.xlsx or .csv)"},
					&cli.StringFlag{Name: "mode", Value: "diff", Usage: "bare-numeral interpretation: diff or strokes"},
					&cli.BoolFlag{Name: "preview", Usage: "parse and resolve only, write nothing"},
				},
				Action: runImport,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

func runImport(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	// The one-shot import publishes nothing.
	cfg.NATS.URL = ""

	ctx := context.Background()
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read scorecard file: %w", err)
	}

	eventID := sharedtypes.EventID(c.String("event"))
	filename := filepath.Base(c.String("file"))
	mode := scorecardtypes.TokenMode(c.String("mode"))

	var out any
	if c.Bool("preview") {
		out, err = application.ImportService.Preview(ctx, eventID, filename, data, mode)
	} else {
		out, err = application.ImportService.Commit(ctx, eventID, filename, data, mode)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
