package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/convset/internal/pipeline"
)

var showSample bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Convert raw records and write a split dataset in one run",
	Long: `Build runs the whole pipeline with a single seeded random source:
- Convert every configured input file into conversations
- Keep the source types selected for splitting
- Analyze conversation quality per file
- Shuffle and split into train, validation and test
- Write the split files and dataset_info.json

Missing or malformed inputs are reported and skipped; only write
failures stop the run.

Example:
  convset build
  convset build --input-dir ./raw --output-dir ./dataset --seed 7
  convset build --ratios 0.8,0.1,0.1 --sources cot,semantic_memory`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	addSeedFlag(buildCmd)
	addLoaderFlags(buildCmd)
	addSplitFlags(buildCmd)
	buildCmd.Flags().BoolVar(&showSample, "sample", false, "print a sample chain-of-thought conversation")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	printBanner(os.Stderr, "Convset Dataset Build")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", cfg.InputDir)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "  Seed:         %d\n", cfg.Seed)
	fmt.Fprintf(os.Stderr, "  Ratios:       %v\n", cfg.Split.Ratios)
	fmt.Fprintf(os.Stderr, "  Sources:      %v\n", cfg.Split.Sources)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg, newLogger(cfg))

	fmt.Fprintf(os.Stderr, "⚙️  Converting %d input files...\n\n", len(cfg.Inputs))
	result, err := p.Build()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	printFiles(os.Stderr, result.Files)
	printQuality(os.Stderr, result.Quality)
	printSplits(os.Stderr, result.Metadata, result.Written)
	if showSample {
		printSample(os.Stderr, result.Split.Train)
	}

	return nil
}
