package normalize

import (
	"fmt"
	"math/rand/v2"

	"github.com/ppiankov/convset/internal/model"
)

// RealtimeReflectionNormalizer renders quick in-flight course corrections
type RealtimeReflectionNormalizer struct{}

// NewRealtimeReflectionNormalizer creates a realtime reflection normalizer
func NewRealtimeReflectionNormalizer() *RealtimeReflectionNormalizer {
	return &RealtimeReflectionNormalizer{}
}

// Source returns the realtime_reflection tag
func (n *RealtimeReflectionNormalizer) Source() model.DataSource {
	return model.SourceRealtimeReflection
}

// Normalize renders a realtime reflection record
func (n *RealtimeReflectionNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	scenario := rec.Get("scenario_description").String("complex problem-solving")

	question := pick(rng, []string{
		fmt.Sprintf("I'm in the middle of %s and need quick reflection on my approach. Help me adjust in real-time.", scenario),
		fmt.Sprintf("Can you give me immediate feedback on my current strategy for %s?", scenario),
		fmt.Sprintf("I need rapid course correction for %s. What should I adjust right now?", scenario),
		fmt.Sprintf("Quick reflection needed: How should I modify my approach to %s?", scenario),
		fmt.Sprintf("Real-time guidance please - I'm working on %s and need immediate insights.", scenario),
	})

	var reasoning Document
	reasoning.Add("Quick real-time reflection on %s...", scenario)
	if state := rec.Get("current_situation", "current_state").String(""); state != "" {
		reasoning.Add("Current state: %s", state)
	}
	if observations := head(rec.Get("immediate_observations").Strings(), 3); len(observations) > 0 {
		reasoning.Add("Key observations:")
		for _, obs := range observations {
			reasoning.Add("- %s", obs)
		}
	}

	var answer Document
	answer.Add("**Quick reflection on %s:**", scenario)
	answer.Section("Immediate Adjustments Needed", rec.Get("immediate_adjustments").Strings(), 3)
	answer.Section("Quick Wins Available", rec.Get("quick_wins").Strings(), 2)
	answer.Section("Watch Out For", rec.Get("warning_signs").Strings(), 2)
	answer.Add("\nMake these adjustments now for better outcomes.")

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}

// StrategyReflectionNormalizer renders strategic analyses
type StrategyReflectionNormalizer struct{}

// NewStrategyReflectionNormalizer creates a strategy reflection normalizer
func NewStrategyReflectionNormalizer() *StrategyReflectionNormalizer {
	return &StrategyReflectionNormalizer{}
}

// Source returns the strategy_reflection tag
func (n *StrategyReflectionNormalizer) Source() model.DataSource {
	return model.SourceStrategyReflection
}

// Normalize renders a strategy reflection record
func (n *StrategyReflectionNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	scenario := rec.Get("scenario_description").String("strategic planning")

	question := pick(rng, []string{
		fmt.Sprintf("I need strategic reflection on %s. What patterns and approaches should I consider?", scenario),
		fmt.Sprintf("Can you analyze the strategic landscape for %s?", scenario),
		fmt.Sprintf("Help me develop a strategic approach to %s based on reflection and analysis.", scenario),
		fmt.Sprintf("What strategic insights can you share about %s?", scenario),
		fmt.Sprintf("I'm planning my strategy for %s. What should I consider?", scenario),
	})

	var reasoning Document
	reasoning.Add("Strategic reflection on %s...", scenario)
	if timeframe := rec.Get("strategic_context", "timeframe").String(""); timeframe != "" {
		reasoning.Add("Timeframe: %s", timeframe)
	}

	var answer Document
	answer.Add("**Strategic reflection on %s:**", scenario)
	answer.Section("Key Strategic Patterns", rec.Get("strategic_patterns").Strings(), 3)
	answer.Section("Strategic Opportunities", rec.Get("opportunities").Strings(), 3)
	answer.Section("Strategic Risks", rec.Get("risks").Strings(), 3)
	answer.Section("Strategic Recommendations", rec.Get("strategic_recommendations").Strings(), 3)
	answer.Add("\nThis strategic analysis of %s provides a foundation for informed decision-making.", scenario)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}

// DeepReflectionNormalizer renders root-cause and systemic analyses
type DeepReflectionNormalizer struct{}

// NewDeepReflectionNormalizer creates a deep reflection normalizer
func NewDeepReflectionNormalizer() *DeepReflectionNormalizer {
	return &DeepReflectionNormalizer{}
}

// Source returns the deep_reflection tag
func (n *DeepReflectionNormalizer) Source() model.DataSource {
	return model.SourceDeepReflection
}

// Normalize renders a deep reflection record
func (n *DeepReflectionNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	scenario := rec.Get("scenario_description").String("complex situation")

	question := pick(rng, []string{
		fmt.Sprintf("I need deep reflection on %s. What are the fundamental patterns and implications?", scenario),
		fmt.Sprintf("Can you provide a comprehensive analysis of %s at a fundamental level?", scenario),
		fmt.Sprintf("Help me understand the deeper implications of %s.", scenario),
		fmt.Sprintf("What systemic insights emerge from deep reflection on %s?", scenario),
		fmt.Sprintf("Analyze %s deeply - what are the root causes and long-term effects?", scenario),
	})

	var reasoning Document
	reasoning.Add("Deep reflection and analysis of %s...", scenario)
	if core := rec.Get("fundamental_analysis", "core_issue").String(""); core != "" {
		reasoning.Add("Core issue: %s", core)
	}

	var answer Document
	answer.Add("**Deep reflection analysis of %s:**", scenario)
	answer.Section("Underlying Patterns", rec.Get("underlying_patterns").Strings(), 3)
	answer.Section("Root Causes", rec.Get("root_causes").Strings(), 3)
	answer.Section("Long-term Implications", rec.Get("long_term_implications").Strings(), 3)
	answer.Section("Key Learning", rec.Get("learning_insights").Strings(), 2)
	answer.Section("System-Level Changes", rec.Get("system_level_recommendations").Strings(), 3)
	answer.Add("\nThis deep reflection reveals the fundamental dynamics underlying %s and provides a foundation for systemic improvements.", scenario)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}
