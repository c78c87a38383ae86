package normalize

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ppiankov/convset/internal/model"
)

// SemanticNormalizer renders concept networks from semantic memory
type SemanticNormalizer struct{}

// NewSemanticNormalizer creates a semantic memory normalizer
func NewSemanticNormalizer() *SemanticNormalizer {
	return &SemanticNormalizer{}
}

// Source returns the semantic_memory tag
func (n *SemanticNormalizer) Source() model.DataSource {
	return model.SourceSemanticMemory
}

// Normalize renders a semantic memory record
func (n *SemanticNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	content := rec.Get("memory_content")
	concepts := content.Get("concepts").List()
	relationships := content.Get("relationships").List()
	domain := rec.Get("domain").String("knowledge")
	description := rec.Get("description").String("")

	var name string
	if len(concepts) == 0 {
		// older records carry a single concept object instead of a network
		fallback := rec.Get("concept")
		name = fallback.Get("name").String("concept")
		domain = fallback.Get("domain").String("general")
	} else {
		main := concepts[0]
		name = main.Get("name").Or(main.Get("id")).String("concept")
	}

	question := pick(rng, []string{
		fmt.Sprintf("Can you explain %s and its relationships in %s?", name, domain),
		fmt.Sprintf("How does %s connect to other concepts in %s?", name, domain),
		fmt.Sprintf("What are the key attributes and relationships of %s?", name),
		fmt.Sprintf("Help me understand the concept network around %s in %s.", name, domain),
		fmt.Sprintf("Analyze %s - what should I know about its role in %s?", name, domain),
	})

	var reasoning Document
	reasoning.Add("I need to retrieve information about %s from my semantic memory in the %s domain.", name, domain)
	reasoning.AddIf(description != "", "Context: %s", description)

	if len(concepts) > 0 {
		reasoning.Add("Let me examine the key concepts in this network:")
		for _, c := range head(concepts, 5) {
			cname := c.Get("name").Or(c.Get("id")).String("unnamed")
			definition := c.Get("definition").Or(c.Get("description")).String("")
			reasoning.Add("- %s: %s", cname, truncate(definition, 100))
			if kind := c.Get("type").String(""); kind != "" {
				reasoning.Add("  Type: %s", kind)
			}
		}
	}

	if len(relationships) > 0 {
		reasoning.Add("\nImportant relationships I should consider:")
		for _, rel := range head(relationships, 4) {
			reasoning.Add("- %s", relationshipText(rel, "related to"))
			if confidence := rel.Get("confidence"); confidence.Truthy() {
				reasoning.Add("  (confidence: %s%%)", confidence.String(""))
			}
		}
	}

	if attributes := content.Get("attributes").List(); len(attributes) > 0 {
		reasoning.Add("\nKey attributes to highlight:")
		for _, attr := range head(attributes, 3) {
			reasoning.Add("- %s: %s",
				attr.Get("name").Or(attr.Get("attribute_name")).String(""),
				attr.Get("value").Or(attr.Get("attribute_value")).String(""))
		}
	}

	var answer Document
	answer.Add("**%s** is a key concept in %s.", name, domain)
	if len(concepts) > 0 {
		main := concepts[0]
		definition := main.Get("definition").Or(main.Get("description")).String("")
		answer.AddIf(definition != "", "\n**Definition**: %s", definition)
	}

	related := make([]string, 0, 3)
	for _, rel := range head(relationships, 3) {
		related = append(related, relationshipText(rel, "relates to"))
	}
	answer.Section("Key Relationships", related, 0)

	if len(concepts) > 1 {
		names := make([]string, 0, 3)
		for _, c := range head(concepts[1:], 3) {
			names = append(names, c.Get("name").Or(c.Get("id")).String(""))
		}
		answer.Section("Related Concepts", names, 0)
	}

	answer.Add("\nThis semantic network in %s shows the interconnected nature of knowledge and how %s fits into the broader conceptual framework.", domain, name)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}

// relationshipText renders "source type target", using fallback when the
// relationship has no type or relation field.
func relationshipText(rel model.Value, fallback string) string {
	source := rel.Get("source").String("")
	target := rel.Get("target").String("")
	kind := rel.Get("type").Or(rel.Get("relation")).String(fallback)
	return strings.Join([]string{source, kind, target}, " ")
}

// EpisodicNormalizer renders recalled experiences from episodic memory
type EpisodicNormalizer struct{}

// NewEpisodicNormalizer creates an episodic memory normalizer
func NewEpisodicNormalizer() *EpisodicNormalizer {
	return &EpisodicNormalizer{}
}

// Source returns the episodic_memory tag
func (n *EpisodicNormalizer) Source() model.DataSource {
	return model.SourceEpisodicMemory
}

// Normalize renders an episodic memory record
func (n *EpisodicNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	scenario := rec.Get("scenario", "description").Or(rec.Get("scenario_description")).String("a research experience")
	timeline := rec.Get("timeline").List()
	outcome := rec.Get("outcome")

	question := pick(rng, []string{
		fmt.Sprintf("I'm facing a situation similar to %s. Can you share relevant experience?", scenario),
		fmt.Sprintf("Tell me about your experience with %s and what lessons you learned.", scenario),
		fmt.Sprintf("How would you approach %s based on past experience?", scenario),
		fmt.Sprintf("What insights can you share from dealing with %s?", scenario),
		fmt.Sprintf("Walk me through a similar experience to %s and the outcomes.", scenario),
	})

	var reasoning Document
	reasoning.Add("Let me recall my episodic memory related to %s...", scenario)
	if setting := rec.Get("context", "setting").String(""); setting != "" {
		reasoning.Add("Setting: %s", setting)
	}
	if len(timeline) > 0 {
		reasoning.Add("Key events from this experience:")
		for _, event := range head(timeline, 5) {
			if desc := event.Get("description").String(""); desc != "" {
				reasoning.Add("- %s", desc)
			}
		}
	}

	var answer Document
	answer.Add("Based on my experience with %s, here's what I learned:", scenario)
	if len(timeline) > 0 {
		answer.Add("\n**What Happened**:")
		for i, event := range head(timeline, 6) {
			if desc := event.Get("description").String(""); desc != "" {
				answer.Add("%d. %s", i+1, desc)
			}
		}
	}

	if outcome.Truthy() {
		result := "challenging"
		if outcome.Get("success").Bool(true) {
			result = "successful"
		}
		answer.Add("\n**Outcome**:")
		answer.Add("The approach was %s.", result)
		answer.Section("Key Lessons", outcome.Get("lessons_learned").Strings(), 3)
	}

	answer.Add("\nThis experience with %s provides valuable insights for similar situations.", scenario)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}

// ProceduralNormalizer renders step-by-step procedures from procedural memory
type ProceduralNormalizer struct{}

// NewProceduralNormalizer creates a procedural memory normalizer
func NewProceduralNormalizer() *ProceduralNormalizer {
	return &ProceduralNormalizer{}
}

// Source returns the procedural_memory tag
func (n *ProceduralNormalizer) Source() model.DataSource {
	return model.SourceProceduralMemory
}

// procedureName lowercases the title and drops the leading verbs that
// make questions read awkwardly ("how do I implementing ...").
func procedureName(title string) string {
	name := strings.ToLower(title)
	name = strings.ReplaceAll(name, "implementing", "")
	name = strings.ReplaceAll(name, "performing", "")
	return strings.TrimSpace(name)
}

// Normalize renders a procedural memory record
func (n *ProceduralNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	content := rec.Get("memory_content")
	steps := content.Get("steps").List()
	domain := rec.Get("domain").String("general")
	description := rec.Get("description").String("")
	name := procedureName(rec.Get("title").String("Procedural Knowledge"))

	question := pick(rng, []string{
		fmt.Sprintf("How do I %s step by step?", name),
		fmt.Sprintf("Can you walk me through the complete process of %s?", name),
		fmt.Sprintf("I need detailed instructions for %s in %s.", name, domain),
		fmt.Sprintf("What's the proper methodology for %s? Include all details.", name),
		fmt.Sprintf("Explain the complete procedure for %s with best practices.", name),
	})

	var reasoning Document
	reasoning.Add("Let me retrieve the procedural knowledge for %s in %s...", name, domain)
	reasoning.AddIf(description != "", "Overview: %s", description)
	reasoning.AddIf(len(steps) > 0, "This involves %d key steps that must be performed in sequence.", len(steps))

	var answer Document
	answer.Add("Here's the complete procedure for %s:", name)
	answer.AddIf(description != "", "\n**Overview**: %s", description)
	answer.Section("Prerequisites", content.Get("conditions").Strings(), 0)

	if len(steps) > 0 {
		answer.Add("\n**Detailed Step-by-Step Process**:")
		for i, step := range steps {
			desc := step.Get("description").Or(step.Get("action")).String(fmt.Sprintf("Step %d", i+1))
			answer.Add("\n**Step %d: %s**", i+1, desc)
			if id := step.Get("step_id").String(""); id != "" {
				answer.Add("*Step ID: %s*", id)
			}
			if duration := step.Get("expected_duration").String(""); duration != "" {
				answer.Add("*Expected Duration: %s*", duration)
			}
			if action := step.Get("action").String(""); action != "" && action != desc {
				answer.Add("*Action: %s*", action)
			}
			answer.SubList("Additional Details", step.Get("details").Strings())
		}
	}

	answer.Section("Best Practices", content.Get("best_practices").Strings(), 0)
	answer.Section("Common Pitfalls to Avoid", content.Get("common_pitfalls").Strings(), 0)

	answer.Add("\n**Summary**: This complete procedural guide for %s ensures systematic and effective execution. "+
		"Follow each step carefully, paying attention to the prerequisites and best practices for optimal results.", name)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}
