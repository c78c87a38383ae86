package quality

import (
	"strings"
	"testing"

	"github.com/ppiankov/convset/internal/model"
)

func TestAnalyzer_Analyze_Basic(t *testing.T) {
	analyzer := NewAnalyzer()

	long := model.BuildConversation("q", "reasoning", strings.Repeat("a", 400), model.SourceCoT, "sys")
	short := model.BuildConversation("q", "r", "short answer", model.SourceCoT, "sys")
	untagged := model.Conversation{
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: "sys"},
			{Role: model.RoleUser, Content: "q"},
			{Role: model.RoleAssistant, Content: strings.Repeat("b", 350)},
		},
		DataSource: model.SourceCoT,
	}
	truncated := model.Conversation{Messages: []model.Message{{Role: model.RoleSystem, Content: "sys"}}}

	report := analyzer.Analyze("cot.json", []model.Conversation{long, short, untagged, truncated})

	if report.Source != "cot.json" {
		t.Errorf("Expected source cot.json, got %s", report.Source)
	}
	if report.Total != 4 {
		t.Errorf("Expected total 4, got %d", report.Total)
	}
	if report.Valid != 2 {
		t.Errorf("Expected 2 valid conversations, got %d", report.Valid)
	}
	if report.HasThinkTag != 2 {
		t.Errorf("Expected 2 with think tags, got %d", report.HasThinkTag)
	}
	if report.ValidityRate != 50 {
		t.Errorf("Expected validity rate 50, got %.2f", report.ValidityRate)
	}
	if len(report.SampleLengths) != 3 {
		t.Errorf("Expected 3 sample lengths, got %d", len(report.SampleLengths))
	}
	if report.SampleLengths[2] != 350 {
		t.Errorf("Expected third sample length 350, got %d", report.SampleLengths[2])
	}
}

func TestAnalyzer_Analyze_Empty(t *testing.T) {
	report := NewAnalyzer().Analyze("empty", nil)

	if report.Total != 0 || report.Valid != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
	if report.AvgLength != 0 || report.ValidityRate != 0 || report.ThinkTagRate != 0 {
		t.Errorf("Expected zero rates for empty input, got %+v", report)
	}
}

func TestAnalyzer_SampleLengthsCapped(t *testing.T) {
	convs := make([]model.Conversation, 25)
	for i := range convs {
		convs[i] = model.BuildConversation("q", "r", "a", model.SourceCoT, "s")
	}

	report := NewAnalyzer().Analyze("many", convs)
	if len(report.SampleLengths) != 10 {
		t.Errorf("Expected 10 sample lengths, got %d", len(report.SampleLengths))
	}
	if report.ThinkTagRate != 100 {
		t.Errorf("Expected think tag rate 100, got %.2f", report.ThinkTagRate)
	}
}

func TestHasDetailMarkers(t *testing.T) {
	if !HasDetailMarkers("text\n**Summary**: done") {
		t.Error("Expected summary marker to be detected")
	}
	if HasDetailMarkers("plain answer") {
		t.Error("Expected no markers in plain answer")
	}
}

func TestFindDetailedSample(t *testing.T) {
	convs := []model.Conversation{
		model.BuildConversation("a", "r", "x", model.SourceSemanticMemory, "s"),
		model.BuildConversation("b", "r", "x", model.SourceCoT, "s"),
	}

	conv, ok := FindDetailedSample(convs, model.SourceCoT, 100)
	if !ok || conv.Messages[1].Content != "b" {
		t.Errorf("Expected to find cot conversation, got %v %v", ok, conv)
	}

	if _, ok := FindDetailedSample(convs, model.SourceCoT, 1); ok {
		t.Error("Expected no cot conversation within the first entry")
	}

	incomplete := model.Conversation{
		Messages:   []model.Message{{Role: model.RoleSystem, Content: "s"}},
		DataSource: model.SourceCoT,
	}
	if _, ok := FindDetailedSample([]model.Conversation{incomplete}, model.SourceCoT, 10); ok {
		t.Error("Expected incomplete conversation to be ignored")
	}
}
