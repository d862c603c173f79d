package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"travelplanner/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Plan a trip interactively in the terminal",
	Long: `chat starts a conversation on stdin.

Commands:
  /reset         start over
  /save [path]   write the last itinerary as text
  /quit          exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			viper.Set("log_level", "warn")
		}

		var (
			dialogue services.DialogueServiceInterface
			exporter services.ExportServiceInterface
		)
		app := fx.New(
			appModules(),
			fx.NopLogger,
			fx.Populate(&dialogue, &exporter),
		)
		if err := app.Err(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := app.Start(ctx); err != nil {
			return err
		}
		defer app.Stop(context.Background())

		return runChat(ctx, dialogue, exporter, os.Stdin, cmd.OutOrStdout())
	},
}

func runChat(ctx context.Context, dialogue services.DialogueServiceInterface, exporter services.ExportServiceInterface, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, services.WelcomeMessage)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			dialogue.Reset()
			fmt.Fprintln(out, services.WelcomeMessage)
		case strings.HasPrefix(line, "/save"):
			path, err := saveItinerary(dialogue, exporter, strings.TrimSpace(strings.TrimPrefix(line, "/save")))
			if err != nil {
				fmt.Fprintln(out, "Could not save itinerary:", err)
				continue
			}
			fmt.Fprintln(out, "Itinerary saved to", path)
		default:
			fmt.Fprintln(out, dialogue.HandleTurn(ctx, line))
		}
	}
}

func saveItinerary(dialogue services.DialogueServiceInterface, exporter services.ExportServiceInterface, path string) (string, error) {
	itinerary, err := dialogue.Itinerary()
	if err != nil {
		return "", err
	}
	export, err := exporter.Export(itinerary, services.FormatText)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = export.Filename
	}
	if err := os.WriteFile(path, export.Body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
