package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/convset/internal/model"
)

// Flags shared by the dataset commands. A flag only overrides the loaded
// configuration when set explicitly.
var (
	seed          int64
	inputDir      string
	convertedDir  string
	outputDir     string
	repair        bool
	ratios        []float64
	splitSources  []string
	systemMessage string
)

func addSeedFlag(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for template choice and shuffling")
}

func addLoaderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "directory holding the raw input files")
	cmd.Flags().BoolVar(&repair, "repair", false, "attempt to repair malformed JSON lines instead of skipping them")
	cmd.Flags().StringVar(&systemMessage, "system-message", "", "system instruction placed in every conversation")
}

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for train/validation/test and dataset_info.json")
	cmd.Flags().Float64SliceVar(&ratios, "ratios", nil, "train,validation,test ratios (default 0.9,0.05,0.05)")
	cmd.Flags().StringSliceVar(&splitSources, "sources", nil, "source types included in the split (default: core four)")
}

// applyFlags copies explicitly set flags onto cfg
func applyFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("input-dir") {
		cfg.InputDir = inputDir
	}
	if changed("converted-dir") {
		cfg.ConvertedDir = convertedDir
	}
	if changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if changed("repair") {
		cfg.Loader.Repair = repair
	}
	if changed("system-message") {
		cfg.SystemMessage = systemMessage
	}
	if changed("ratios") {
		if len(ratios) != 3 {
			return fmt.Errorf("--ratios needs exactly three values, got %d", len(ratios))
		}
		cfg.Split.Ratios = ratios
	}
	if changed("sources") {
		for _, s := range splitSources {
			if _, err := model.ParseDataSource(s); err != nil {
				return err
			}
		}
		cfg.Split.Sources = splitSources
	}
	return nil
}
