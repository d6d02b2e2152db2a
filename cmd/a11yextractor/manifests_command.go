package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvdtogt/a11yExtractor/internal/config"
	"github.com/tvdtogt/a11yExtractor/internal/manifestgen"
)

func newManifestsCommand(ctx *commandContext) *cobra.Command {
	var tool string
	var prefsPath string
	var outputDir string
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "manifests <epub-dir>",
		Short: "Generate publication manifests for every EPUB under a directory",
		Long: `Walks <epub-dir> recursively and runs "<tool> manifest" for every .epub
file. Manifests are written to --output (defaults to paths.manifest_dir, or
output_dir from --prefs). Files without an .epub extension are listed in
exceptions.txt in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			// Work on a copy so preferences do not leak into later commands.
			local := *cfg
			if strings.TrimSpace(prefsPath) != "" {
				prefs, err := config.LoadPreferences(prefsPath)
				if err != nil {
					return err
				}
				if err := prefs.Apply(&local); err != nil {
					return err
				}
			}
			if strings.TrimSpace(outputDir) != "" {
				if local.Paths.ManifestDir, err = config.ExpandPath(outputDir); err != nil {
					return fmt.Errorf("resolve --output: %w", err)
				}
			}

			gen, err := manifestgen.NewFromConfig(&local, tool, manifestgen.WithLogger(logger))
			if err != nil {
				return err
			}
			if !skipPreflight {
				if err := gen.Preflight(); err != nil {
					return err
				}
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}
			result, err := gen.Run(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Converted %d EPUB file(s) with %s. Manifests written to %s\n", result.Converted, gen.Tool(), gen.OutputDir())
			if result.Failed > 0 {
				fmt.Fprintf(out, "%d EPUB file(s) failed; see the log for details\n", result.Failed)
			}
			if result.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d file(s) with the wrong extension; listed in %s\n", result.Skipped, result.ExceptionsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "", "Manifest tool: readium or rwp (defaults to tools.default)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Legacy preferences.txt with readium_path, rwp_path, and output_dir")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for generated manifests")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Do not check the tool binary before walking")
	return cmd
}
