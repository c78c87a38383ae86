package quality

import (
	"strings"

	"github.com/ppiankov/convset/internal/model"
)

// DetailMarkers are headings that show an answer carries full step details
var DetailMarkers = []string{
	"**Detailed Step-by-Step Process**",
	"*Required Inputs:*",
	"*How to Validate:*",
	"**Summary**:",
}

// Analyzer computes quality statistics over converted conversations
type Analyzer struct {
	minLength  int // assistant content longer than this counts as complete
	sampleSize int // number of leading lengths kept as samples
}

// NewAnalyzer creates an analyzer with the default thresholds
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		minLength:  300,
		sampleSize: 10,
	}
}

// Analyze reports validity, think-tag coverage and length statistics.
// Conversations with fewer than three messages count toward the total only.
func (a *Analyzer) Analyze(source string, conversations []model.Conversation) model.QualityReport {
	report := model.QualityReport{
		Source:        source,
		Total:         len(conversations),
		SampleLengths: []int{},
	}

	totalLength := 0
	for _, conv := range conversations {
		if len(conv.Messages) < 3 {
			continue
		}
		content := conv.AssistantContent()

		if HasThinkTags(content) {
			report.HasThinkTag++
		}

		length := len([]rune(content))
		totalLength += length
		if length > a.minLength {
			report.Valid++
		}
		if len(report.SampleLengths) < a.sampleSize {
			report.SampleLengths = append(report.SampleLengths, length)
		}
	}

	if report.Total > 0 {
		report.AvgLength = float64(totalLength) / float64(report.Total)
		report.ValidityRate = float64(report.Valid) / float64(report.Total) * 100
		report.ThinkTagRate = float64(report.HasThinkTag) / float64(report.Total) * 100
	}

	return report
}

// HasThinkTags reports whether content carries both reasoning markers
func HasThinkTags(content string) bool {
	return strings.Contains(content, model.ThinkOpen) && strings.Contains(content, model.ThinkClose)
}

// HasDetailMarkers reports whether content carries any detail marker
func HasDetailMarkers(content string) bool {
	for _, marker := range DetailMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// FindDetailedSample returns the first complete conversation of the given
// source among the first limit conversations, if any.
func FindDetailedSample(conversations []model.Conversation, source model.DataSource, limit int) (model.Conversation, bool) {
	if limit > len(conversations) || limit <= 0 {
		limit = len(conversations)
	}
	for _, conv := range conversations[:limit] {
		if conv.DataSource == source && conv.Complete() {
			return conv, true
		}
	}
	return model.Conversation{}, false
}
