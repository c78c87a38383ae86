package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/convset/internal/pipeline"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [converted files...]",
	Short: "Split previously converted conversation files into a dataset",
	Long: `Split loads converted conversation files, shuffles the combined corpus
with the configured seed and writes train, validation and test splits
plus dataset_info.json.

Without arguments it reads the converted files of the source types
selected for splitting from the converted directory.

Example:
  convset split
  convset split converted/rich_sharegpt_cot_data.json converted/rich_sharegpt_semantic_memory.json
  convset split --ratios 0.8,0.1,0.1 --output-dir ./dataset`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	addSeedFlag(splitCmd)
	addSplitFlags(splitCmd)
	splitCmd.Flags().BoolVar(&showSample, "sample", false, "print a sample chain-of-thought conversation")
	splitCmd.Flags().StringVar(&convertedDir, "converted-dir", "", "directory holding per-type conversation files")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, newLogger(cfg))
	paths := args
	if len(paths) == 0 {
		paths = p.ConvertedFiles()
	}

	printBanner(os.Stderr, "Convset Dataset Split")
	fmt.Fprintf(os.Stderr, "  Files:        %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "  Seed:         %d\n", cfg.Seed)
	fmt.Fprintf(os.Stderr, "\n")

	result, err := p.SplitConverted(paths)
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	printFiles(os.Stderr, result.Files)
	printQuality(os.Stderr, result.Quality)
	printSplits(os.Stderr, result.Metadata, result.Written)
	if showSample {
		printSample(os.Stderr, result.Split.Train)
	}

	return nil
}
