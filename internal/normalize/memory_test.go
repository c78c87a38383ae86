package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemantic_ConceptNetwork(t *testing.T) {
	long := strings.Repeat("x", 120)
	rec := mustRecord(t, `{
		"domain": "biology",
		"description": "cell structures",
		"memory_content": {
			"concepts": [
				{"name": "Mitochondria", "definition": "Powerhouse of the cell", "type": "organelle"},
				{"id": "ribosome", "description": "`+long+`"},
				{"name": "Nucleus"},
				{"name": "Golgi"},
				{"name": "Lysosome"},
				{"name": "Vacuole"}
			],
			"relationships": [
				{"source": "Mitochondria", "type": "produces", "target": "ATP", "confidence": 92},
				{"source": "Nucleus", "relation": "contains", "target": "DNA", "confidence": 0},
				{"source": "Ribosome", "target": "Protein"},
				{"source": "a", "type": "b", "target": "c"},
				{"source": "dropped", "type": "x", "target": "y"}
			],
			"attributes": [
				{"name": "size", "value": "1um"},
				{"attribute_name": "shape", "attribute_value": "oval"}
			]
		}
	}`)

	ex := NewSemanticNormalizer().Normalize(rec, nil)

	assert.Contains(t, ex.Reasoning, "semantic memory in the biology domain.")
	assert.Contains(t, ex.Reasoning, "Context: cell structures")
	assert.Contains(t, ex.Reasoning, "- Mitochondria: Powerhouse of the cell\n  Type: organelle")
	assert.Contains(t, ex.Reasoning, "- ribosome: "+strings.Repeat("x", 100)+"...")
	assert.Contains(t, ex.Reasoning, "- Lysosome: ")
	assert.NotContains(t, ex.Reasoning, "Vacuole")
	assert.Contains(t, ex.Reasoning, "- Mitochondria produces ATP\n  (confidence: 92%)")
	assert.Contains(t, ex.Reasoning, "- Nucleus contains DNA\n- Ribosome related to Protein")
	assert.NotContains(t, ex.Reasoning, "dropped")
	assert.Contains(t, ex.Reasoning, "\nKey attributes to highlight:\n- size: 1um\n- shape: oval")

	assert.True(t, strings.HasPrefix(ex.Answer, "**Mitochondria** is a key concept in biology."))
	assert.Contains(t, ex.Answer, "\n**Definition**: Powerhouse of the cell")
	assert.Contains(t, ex.Answer, "\n**Key Relationships**:\n• Mitochondria produces ATP\n• Nucleus contains DNA\n• Ribosome relates to Protein\n")
	assert.NotContains(t, ex.Answer, "• a b c")
	assert.Contains(t, ex.Answer, "\n**Related Concepts**:\n• ribosome\n• Nucleus\n• Golgi\n")
	assert.NotContains(t, ex.Answer, "Lysosome")
	assert.True(t, strings.HasSuffix(ex.Answer, "how Mitochondria fits into the broader conceptual framework."))
}

func TestSemantic_FallbackConcept(t *testing.T) {
	rec := mustRecord(t, `{"domain":"ignored","concept":{"name":"Entropy","domain":"physics"}}`)
	ex := NewSemanticNormalizer().Normalize(rec, nil)

	assert.Equal(t, "I need to retrieve information about Entropy from my semantic memory in the physics domain.", ex.Reasoning)
	assert.Equal(t, "**Entropy** is a key concept in physics.\n\nThis semantic network in physics shows the interconnected nature of knowledge and how Entropy fits into the broader conceptual framework.", ex.Answer)
}

func TestEpisodic_TimelineAndOutcome(t *testing.T) {
	rec := mustRecord(t, `{
		"scenario": {"description": "migrating a database"},
		"scenario_description": "ignored",
		"context": {"setting": "production"},
		"timeline": [
			{"description": "froze writes"},
			{"timestamp": "t2"},
			{"description": "copied data"},
			{"description": "four"},
			{"description": "five"},
			{"description": "six"},
			{"description": "seven"}
		],
		"outcome": {"success": false, "lessons_learned": ["rehearse", "monitor", "communicate", "extra"]}
	}`)

	ex := NewEpisodicNormalizer().Normalize(rec, nil)

	assert.Contains(t, ex.Reasoning, "related to migrating a database...\nSetting: production\nKey events from this experience:\n- froze writes\n- copied data\n- four\n- five")
	assert.NotContains(t, ex.Reasoning, "six")

	assert.Contains(t, ex.Answer, "\n**What Happened**:\n1. froze writes\n3. copied data\n4. four\n5. five\n6. six\n")
	assert.NotContains(t, ex.Answer, "seven")
	assert.Contains(t, ex.Answer, "\n**Outcome**:\nThe approach was challenging.\n\n**Key Lessons**:\n• rehearse\n• monitor\n• communicate\n")
	assert.NotContains(t, ex.Answer, "extra")
}

func TestEpisodic_ScenarioFallbacks(t *testing.T) {
	rec := mustRecord(t, `{"scenario_description":"an outage","outcome":{"lessons_learned":[]}}`)
	ex := NewEpisodicNormalizer().Normalize(rec, nil)

	assert.Contains(t, ex.Question, "an outage")
	assert.Contains(t, ex.Answer, "The approach was successful.")
	assert.NotContains(t, ex.Answer, "Key Lessons")

	empty := NewEpisodicNormalizer().Normalize(mustRecord(t, `{"outcome":{}}`), nil)
	assert.NotContains(t, empty.Answer, "**Outcome**")
}

func TestProcedural_Steps(t *testing.T) {
	rec := mustRecord(t, `{
		"title": "Implementing Blue-Green Deploys",
		"domain": "devops",
		"description": "zero downtime releases",
		"memory_content": {
			"conditions": ["two environments"],
			"steps": [
				{"description": "Provision green", "step_id": "s1", "expected_duration": "10m", "action": "terraform apply", "details": ["same size as blue"]},
				{"action": "Switch traffic"},
				{}
			],
			"best_practices": ["keep blue warm"],
			"common_pitfalls": ["schema drift"]
		}
	}`)

	ex := NewProceduralNormalizer().Normalize(rec, nil)

	assert.Equal(t, "Let me retrieve the procedural knowledge for blue-green deploys in devops...\nOverview: zero downtime releases\nThis involves 3 key steps that must be performed in sequence.", ex.Reasoning)
	assert.True(t, strings.HasPrefix(ex.Answer, "Here's the complete procedure for blue-green deploys:"))
	assert.Contains(t, ex.Answer, "\n**Prerequisites**:\n• two environments")
	assert.Contains(t, ex.Answer, "**Step 1: Provision green**\n*Step ID: s1*\n*Expected Duration: 10m*\n*Action: terraform apply*\n*Additional Details:*\n  - same size as blue")
	assert.Contains(t, ex.Answer, "**Step 2: Switch traffic**\n\n**Step 3: Step 3**")
	assert.NotContains(t, ex.Answer, "*Action: Switch traffic*")
	assert.Contains(t, ex.Answer, "\n**Best Practices**:\n• keep blue warm\n\n**Common Pitfalls to Avoid**:\n• schema drift")
	assert.True(t, strings.HasPrefix(ex.Answer[strings.LastIndex(ex.Answer, "\n")+1:], "**Summary**: This complete procedural guide for blue-green deploys"))
}

func TestProcedureName(t *testing.T) {
	assert.Equal(t, "code review", procedureName("Performing Code Review"))
	assert.Equal(t, "procedural knowledge", procedureName("Procedural Knowledge"))
}
