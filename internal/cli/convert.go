package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/convset/internal/pipeline"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert raw records into per-type conversation files",
	Long: `Convert reads every configured input file, turns each record into a
system/user/assistant conversation and writes one JSON file per input
plus conversion_info.json into the converted directory.

All seven source types are converted; the split step later decides
which of them enter the dataset.

Example:
  convset convert
  convset convert --input-dir ./raw --converted-dir ./converted --repair`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	addSeedFlag(convertCmd)
	addLoaderFlags(convertCmd)
	convertCmd.Flags().StringVar(&convertedDir, "converted-dir", "", "directory for per-type conversation files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	printBanner(os.Stderr, "Convset Conversion")
	fmt.Fprintf(os.Stderr, "  Input dir:      %s\n", cfg.InputDir)
	fmt.Fprintf(os.Stderr, "  Converted dir:  %s\n", cfg.ConvertedDir)
	fmt.Fprintf(os.Stderr, "  Repair:         %v\n", cfg.Loader.Repair)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg, newLogger(cfg))
	result := p.Convert(cfg.Inputs)
	printFiles(os.Stderr, result.Files)

	written, err := p.WriteConverted(result, cfg.ConvertedDir)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "  Total: %d conversations\n\n", result.Converted())
	for _, path := range written {
		fmt.Fprintf(os.Stderr, "  ✓ %s\n", path)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}
