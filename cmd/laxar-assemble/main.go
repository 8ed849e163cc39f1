// Command laxar-assemble validates and assembles a build-time artifact
// bundle: flows, pages, widgets, layouts, and shared schemas given as a
// single JSON or YAML document.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goccyjson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/laxarjs/laxar-assembler/internal/loader"
	"github.com/laxarjs/laxar-assembler/internal/log"
	"github.com/laxarjs/laxar-assembler/internal/orchestrator"
)

func main() {
	logCfg := log.NewConfig()

	var outPath string

	rootCmd := &cobra.Command{
		Use:   "laxar-assemble <bundle-file>",
		Short: "Validate and assemble a declarative SPA artifact bundle",
		Long: `laxar-assemble reads a JSON or YAML document describing flows, pages,
widgets, layouts and shared schemas, validates every artifact against its
schema, and assembles every entry page into a self-contained definition
with all inheritance, compositions and feature expressions expanded.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(handler))

			return run(cmd.Context(), args[0], outPath)
		},
	}

	logCfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "-", "output path, or \"-\" for stdout")

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inputPath, outputPath string) error {
	bundle, err := loader.Load(inputPath)
	if err != nil {
		return err
	}

	slog.Info("bundle loaded",
		"schemas", len(bundle.Schemas),
		"flows", len(bundle.Flows),
		"pages", len(bundle.Pages),
		"widgets", len(bundle.Widgets),
		"layouts", len(bundle.Layouts),
	)

	result, err := orchestrator.ValidateArtifacts(ctx, bundle)
	if err != nil {
		return err
	}

	slog.Info("bundle assembled", "entryPages", len(result.Pages))

	out, err := goccyjson.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	out = append(out, '\n')

	if outputPath == "" || outputPath == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(outputPath, out, 0o644)
	}
	return err
}
