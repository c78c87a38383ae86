package model

// Split names, in output order
const (
	SplitTrain      = "train"
	SplitValidation = "validation"
	SplitTest       = "test"
)

// SplitNames lists the splits in the order their contents concatenate
var SplitNames = []string{SplitTrain, SplitValidation, SplitTest}

// DatasetMetadata is the summary document written next to the split files
type DatasetMetadata struct {
	DatasetID               string                  `json:"dataset_id"`
	DatasetName             string                  `json:"dataset_name"`
	Description             string                  `json:"description"`
	Version                 string                  `json:"version"`
	CreatedDate             string                  `json:"created_date"`
	TotalConversations      int                     `json:"total_conversations"`
	Improvements            []string                `json:"improvements_over_v2"`
	Splits                  map[string]SplitSummary `json:"splits"`
	DataSources             map[string]string       `json:"data_sources"`
	Format                  string                  `json:"format"`
	TrainingRecommendations TrainingRecommendations `json:"training_recommendations"`
	ExpectedCapabilities    []string                `json:"expected_capabilities"`
}

// SplitSummary describes one split
type SplitSummary struct {
	Conversations          int            `json:"conversations"`
	Percentage             float64        `json:"percentage"`
	DataSourceDistribution map[string]int `json:"data_source_distribution"`
}

// TrainingRecommendations is a passthrough hint block for downstream finetuning
type TrainingRecommendations struct {
	BatchSize                 string `json:"batch_size"`
	GradientAccumulationSteps int    `json:"gradient_accumulation_steps"`
	EffectiveBatchSize        int    `json:"effective_batch_size"`
	LearningRate              string `json:"learning_rate"`
	Epochs                    int    `json:"epochs"`
	SequenceLength            int    `json:"sequence_length"`
	MaxNewTokens              int    `json:"max_new_tokens"`
	LoraRank                  int    `json:"lora_rank"`
	Quantization              string `json:"quantization"`
}

// DatasetFormat describes the conversation layout
const DatasetFormat = "ShareGPT with <think> tags for explicit reasoning"

// DefaultTrainingRecommendations returns the fixed hint block
func DefaultTrainingRecommendations() TrainingRecommendations {
	return TrainingRecommendations{
		BatchSize:                 "4 per device (dual RTX 3090)",
		GradientAccumulationSteps: 8,
		EffectiveBatchSize:        32,
		LearningRate:              "2e-4",
		Epochs:                    3,
		SequenceLength:            4096,
		MaxNewTokens:              1024,
		LoraRank:                  64,
		Quantization:              "4-bit",
	}
}

// DatasetImprovements lists what the rich conversion adds over earlier datasets
var DatasetImprovements = []string{
	"All CoT responses include complete step-by-step details",
	"Full validation criteria and input requirements included",
	"Comprehensive error handling and best practices",
	"Detailed summaries and conclusions",
	"Average response length significantly increased",
}

// ExpectedCapabilities lists what a model trained on the dataset should do
var ExpectedCapabilities = []string{
	"Complete chain-of-thought reasoning with all details",
	"No truncated responses",
	"Rich memory integration and retrieval",
	"Detailed step-by-step problem solving",
	"Comprehensive explanations with validation",
}

// ConversionInfo summarizes a conversion run
type ConversionInfo struct {
	RunID              string         `json:"run_id"`
	ConversionDate     string         `json:"conversion_date"`
	Version            string         `json:"version"`
	Improvements       []string       `json:"improvements"`
	Converted          map[string]int `json:"converted"`
	Skipped            map[string]int `json:"skipped"`
	TotalConversations int            `json:"total_conversations"`
}

// ConversionImprovements lists what the rich conversion includes
var ConversionImprovements = []string{
	"All CoT steps include full details",
	"Complete validation criteria included",
	"All input requirements listed",
	"Potential errors and pitfalls documented",
	"Best practices and applications added",
	"Comprehensive summaries provided",
}

// QualityReport summarizes conversation quality for one source file
type QualityReport struct {
	Source        string  `json:"source"`
	Total         int     `json:"total"`
	Valid         int     `json:"valid"`
	ValidityRate  float64 `json:"validity_rate"`
	HasThinkTag   int     `json:"has_think_tag"`
	ThinkTagRate  float64 `json:"think_tag_rate"`
	AvgLength     float64 `json:"avg_length"`
	SampleLengths []int   `json:"sample_lengths"`
}
