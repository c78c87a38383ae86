package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealtimeReflection_Truncation(t *testing.T) {
	rec := mustRecord(t, `{
		"scenario_description": "a live migration",
		"current_situation": {"current_state": "50% copied"},
		"immediate_observations": ["o1", "o2", "o3", "o4"],
		"immediate_adjustments": ["a1", "a2", "a3", "a4"],
		"quick_wins": ["w1", "w2", "w3"],
		"warning_signs": ["s1", "s2", "s3"]
	}`)

	ex := NewRealtimeReflectionNormalizer().Normalize(rec, nil)

	assert.Equal(t, "Quick real-time reflection on a live migration...\nCurrent state: 50% copied\nKey observations:\n- o1\n- o2\n- o3", ex.Reasoning)
	assert.Equal(t, "**Quick reflection on a live migration:**\n"+
		"\n**Immediate Adjustments Needed**:\n• a1\n• a2\n• a3\n"+
		"\n**Quick Wins Available**:\n• w1\n• w2\n"+
		"\n**Watch Out For**:\n• s1\n• s2\n"+
		"\nMake these adjustments now for better outcomes.", ex.Answer)
}

func TestStrategyReflection_Sections(t *testing.T) {
	rec := mustRecord(t, `{
		"scenario_description": "entering a new market",
		"strategic_context": {"timeframe": "18 months"},
		"strategic_patterns": ["p1", "p2", "p3", "p4"],
		"risks": ["r1"]
	}`)

	ex := NewStrategyReflectionNormalizer().Normalize(rec, nil)

	assert.Equal(t, "Strategic reflection on entering a new market...\nTimeframe: 18 months", ex.Reasoning)
	assert.Contains(t, ex.Answer, "\n**Key Strategic Patterns**:\n• p1\n• p2\n• p3\n")
	assert.NotContains(t, ex.Answer, "p4")
	assert.NotContains(t, ex.Answer, "Strategic Opportunities")
	assert.Contains(t, ex.Answer, "\n**Strategic Risks**:\n• r1\n")
	assert.NotContains(t, ex.Answer, "Strategic Recommendations")
	assert.Contains(t, ex.Answer, "This strategic analysis of entering a new market provides a foundation for informed decision-making.")
}

func TestDeepReflection_Sections(t *testing.T) {
	rec := mustRecord(t, `{
		"scenario_description": "repeated outages",
		"fundamental_analysis": {"core_issue": "no ownership"},
		"underlying_patterns": ["u1"],
		"root_causes": ["c1", "c2", "c3", "c4"],
		"long_term_implications": ["l1"],
		"learning_insights": ["i1", "i2", "i3"],
		"system_level_recommendations": ["s1"]
	}`)

	ex := NewDeepReflectionNormalizer().Normalize(rec, nil)

	assert.Equal(t, "Deep reflection and analysis of repeated outages...\nCore issue: no ownership", ex.Reasoning)
	assert.Equal(t, "**Deep reflection analysis of repeated outages:**\n"+
		"\n**Underlying Patterns**:\n• u1\n"+
		"\n**Root Causes**:\n• c1\n• c2\n• c3\n"+
		"\n**Long-term Implications**:\n• l1\n"+
		"\n**Key Learning**:\n• i1\n• i2\n"+
		"\n**System-Level Changes**:\n• s1\n"+
		"\nThis deep reflection reveals the fundamental dynamics underlying repeated outages and provides a foundation for systemic improvements.", ex.Answer)
}

func TestReflection_NonStringListItems(t *testing.T) {
	rec := mustRecord(t, `{"risks": [3, true, {"nested": 1}, "plain"]}`)
	ex := NewStrategyReflectionNormalizer().Normalize(rec, nil)
	assert.Contains(t, ex.Answer, "\n**Strategic Risks**:\n• 3\n• true\n• plain\n")
}
