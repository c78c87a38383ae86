package pipeline

import (
	"testing"
	"time"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/split"
)

func conversations(source model.DataSource, n int) []model.Conversation {
	convs := make([]model.Conversation, n)
	for i := range convs {
		convs[i] = model.BuildConversation("q", "r", "a", source, "sys")
	}
	return convs
}

func TestBuildMetadata(t *testing.T) {
	result := &split.Result{
		Train:      append(conversations(model.SourceCoT, 6), conversations(model.SourceEpisodicMemory, 2)...),
		Validation: conversations(model.SourceCoT, 1),
		Test:       []model.Conversation{{Messages: nil}},
	}
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := model.DefaultConfig().Dataset

	md := BuildMetadata(cfg, []model.DataSource{model.SourceCoT, model.SourceEpisodicMemory}, result, created)

	if md.TotalConversations != 10 {
		t.Errorf("Expected 10 conversations, got %d", md.TotalConversations)
	}
	if md.DatasetID == "" {
		t.Error("Expected dataset id to be set")
	}
	if md.DatasetName != cfg.Name || md.Version != cfg.Version {
		t.Errorf("Expected dataset fields from config, got %q %q", md.DatasetName, md.Version)
	}
	if md.CreatedDate != "2025-01-02T03:04:05Z" {
		t.Errorf("Unexpected created date %s", md.CreatedDate)
	}

	train := md.Splits[model.SplitTrain]
	if train.Conversations != 8 || train.Percentage != 80 {
		t.Errorf("Expected train 8 (80%%), got %d (%.2f%%)", train.Conversations, train.Percentage)
	}
	if train.DataSourceDistribution["cot"] != 6 || train.DataSourceDistribution["episodic_memory"] != 2 {
		t.Errorf("Unexpected train distribution %v", train.DataSourceDistribution)
	}
	if md.Splits[model.SplitValidation].Percentage != 10 {
		t.Errorf("Expected validation 10%%, got %.2f", md.Splits[model.SplitValidation].Percentage)
	}
	if got := md.Splits[model.SplitTest].DataSourceDistribution["unknown"]; got != 1 {
		t.Errorf("Expected untagged conversation counted as unknown, got %d", got)
	}

	if len(md.DataSources) != 2 || md.DataSources["cot"] == "" {
		t.Errorf("Expected descriptions for both sources, got %v", md.DataSources)
	}
}

func TestBuildMetadata_EmptyCorpus(t *testing.T) {
	md := BuildMetadata(model.DefaultConfig().Dataset, nil, &split.Result{}, time.Now())

	if md.TotalConversations != 0 {
		t.Errorf("Expected 0 conversations, got %d", md.TotalConversations)
	}
	for _, name := range model.SplitNames {
		s, ok := md.Splits[name]
		if !ok {
			t.Fatalf("Expected split %s in metadata", name)
		}
		if s.Conversations != 0 || s.Percentage != 0 {
			t.Errorf("Expected empty %s split with 0%%, got %d (%.2f%%)", name, s.Conversations, s.Percentage)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 4, 25},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := percentage(tt.part, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}
