package model

// Config holds the complete convset configuration
type Config struct {
	Seed          int64         `yaml:"seed" mapstructure:"seed"`
	SystemMessage string        `yaml:"system_message" mapstructure:"system_message"`
	InputDir      string        `yaml:"input_dir" mapstructure:"input_dir"`
	ConvertedDir  string        `yaml:"converted_dir" mapstructure:"converted_dir"`
	OutputDir     string        `yaml:"output_dir" mapstructure:"output_dir"`
	Inputs        []InputConfig `yaml:"inputs" mapstructure:"inputs"`
	Loader        LoaderConfig  `yaml:"loader" mapstructure:"loader"`
	Split         SplitConfig   `yaml:"split" mapstructure:"split"`
	Dataset       DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Verbose       bool          `yaml:"verbose" mapstructure:"verbose"`
}

// InputConfig maps one raw input file to its source type
type InputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`     // relative to InputDir unless absolute
	Type   string `yaml:"type" mapstructure:"type"`     // one of the recognized source types
	Cap    int    `yaml:"cap" mapstructure:"cap"`       // max conversions, 0 = unlimited
	Output string `yaml:"output" mapstructure:"output"` // per-type converted file name
}

// LoaderConfig controls record loading
type LoaderConfig struct {
	Repair        bool `yaml:"repair" mapstructure:"repair"`                 // attempt to repair malformed lines
	ProgressEvery int  `yaml:"progress_every" mapstructure:"progress_every"` // log every N conversions
}

// SplitConfig controls dataset partitioning
type SplitConfig struct {
	Ratios  []float64 `yaml:"ratios" mapstructure:"ratios"`   // train, validation, test
	Sources []string  `yaml:"sources" mapstructure:"sources"` // types included in the split, empty = all
}

// DatasetConfig holds descriptive metadata fields
type DatasetConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Description string `yaml:"description" mapstructure:"description"`
	Version     string `yaml:"version" mapstructure:"version"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Seed:          42,
		SystemMessage: DefaultSystemMessage,
		InputDir:      "raw_consolidated",
		ConvertedDir:  "processed_rich_fixed",
		OutputDir:     "final_rich_dataset_fixed",
		Inputs: []InputConfig{
			{Path: "combined_cot_data.json", Type: string(SourceCoT), Cap: 50000, Output: "rich_sharegpt_cot_data.json"},
			{Path: "combined_semantic_memory.jsonl", Type: string(SourceSemanticMemory), Cap: 30000, Output: "rich_sharegpt_semantic_memory.json"},
			{Path: "combined_episodic_memory.jsonl", Type: string(SourceEpisodicMemory), Cap: 2000, Output: "rich_sharegpt_episodic_memory.json"},
			{Path: "combined_procedural_memory.jsonl", Type: string(SourceProceduralMemory), Cap: 1000, Output: "rich_sharegpt_procedural_memory.json"},
			{Path: "combined_realtime_reflection.jsonl", Type: string(SourceRealtimeReflection), Cap: 20000, Output: "rich_sharegpt_realtime_reflection.json"},
			{Path: "combined_strategy_reflection.jsonl", Type: string(SourceStrategyReflection), Cap: 15000, Output: "rich_sharegpt_strategy_reflection.json"},
			{Path: "combined_deep_reflection.jsonl", Type: string(SourceDeepReflection), Cap: 5000, Output: "rich_sharegpt_deep_reflection.json"},
		},
		Loader: LoaderConfig{
			Repair:        false,
			ProgressEvery: 1000,
		},
		Split: SplitConfig{
			Ratios: []float64{0.9, 0.05, 0.05},
			Sources: []string{
				string(SourceCoT),
				string(SourceSemanticMemory),
				string(SourceEpisodicMemory),
				string(SourceProceduralMemory),
			},
		},
		Dataset: DatasetConfig{
			Name:        "Phi-4 Informius Rich Training Dataset (FIXED)",
			Description: "Enhanced ShareGPT formatted dataset with COMPLETE answers for Phi-4 finetuning",
			Version:     "3.0_complete_answers",
		},
	}
}

// IncludesSource reports whether a source type takes part in the split
func (c SplitConfig) IncludesSource(source string) bool {
	if len(c.Sources) == 0 {
		return true
	}
	for _, s := range c.Sources {
		if s == source {
			return true
		}
	}
	return false
}
