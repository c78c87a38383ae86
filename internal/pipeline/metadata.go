package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/split"
)

// BuildMetadata summarizes a split. Each split gets its size, its share of
// the corpus (0 for an empty corpus) and a count per data source.
func BuildMetadata(cfg model.DatasetConfig, sources []model.DataSource, result *split.Result, createdAt time.Time) model.DatasetMetadata {
	total := result.Total()

	splits := make(map[string]model.SplitSummary, len(model.SplitNames))
	for _, name := range model.SplitNames {
		convs := result.Named(name)
		splits[name] = model.SplitSummary{
			Conversations:          len(convs),
			Percentage:             percentage(len(convs), total),
			DataSourceDistribution: sourceDistribution(convs),
		}
	}

	descriptions := make(map[string]string, len(sources))
	for _, s := range sources {
		descriptions[string(s)] = s.Description()
	}

	return model.DatasetMetadata{
		DatasetID:               uuid.NewString(),
		DatasetName:             cfg.Name,
		Description:             cfg.Description,
		Version:                 cfg.Version,
		CreatedDate:             createdAt.Format(time.RFC3339),
		TotalConversations:      total,
		Improvements:            model.DatasetImprovements,
		Splits:                  splits,
		DataSources:             descriptions,
		Format:                  model.DatasetFormat,
		TrainingRecommendations: model.DefaultTrainingRecommendations(),
		ExpectedCapabilities:    model.ExpectedCapabilities,
	}
}

// sourceDistribution counts conversations per data source tag
func sourceDistribution(convs []model.Conversation) map[string]int {
	counts := make(map[string]int)
	for _, c := range convs {
		counts[c.Source()]++
	}
	return counts
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
