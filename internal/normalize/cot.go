package normalize

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ppiankov/convset/internal/model"
)

// complexityLevels maps record complexity to the wording used in text.
// Unlisted values pass through unchanged.
var complexityLevels = map[string]string{
	"low":    "basic",
	"medium": "intermediate",
	"high":   "advanced",
	"expert": "expert: highly complex reasoning with multiple interdependent components",
}

// CoTNormalizer renders chain-of-thought frameworks with their full step details
type CoTNormalizer struct{}

// NewCoTNormalizer creates a chain-of-thought normalizer
func NewCoTNormalizer() *CoTNormalizer {
	return &CoTNormalizer{}
}

// Source returns the cot tag
func (n *CoTNormalizer) Source() model.DataSource {
	return model.SourceCoT
}

type cotStep struct {
	description string
	inputs      []string
	validation  []string
	errors      []string
	outcomes    []string
}

func cotSteps(rec model.Record) []cotStep {
	var steps []cotStep
	for i, v := range rec.Get("steps").List() {
		s := v.Record()
		steps = append(steps, cotStep{
			description: s.Get("description").String(fmt.Sprintf("Step %d", i+1)),
			inputs:      s.Get("input_requirements").Strings(),
			validation:  s.Get("validation_criteria").Strings(),
			errors:      s.Get("potential_errors").Strings(),
			outcomes:    s.Get("expected_outcomes").Strings(),
		})
	}
	return steps
}

// Normalize renders a cot record
func (n *CoTNormalizer) Normalize(rec model.Record, rng *rand.Rand) Exchange {
	title := rec.Get("title").String("Chain-of-Thought Reasoning")
	domain := rec.Get("domain").String("general")
	description := rec.Get("description").String("")
	complexity := rec.Get("complexity").String("medium")

	level, ok := complexityLevels[complexity]
	if !ok {
		level = complexity
	}
	subject := strings.ToLower(title)

	question := pick(rng, []string{
		fmt.Sprintf("I need help with %s in %s. Can you walk me through the systematic approach?", subject, domain),
		fmt.Sprintf("Walk me through %s - I need to understand the reasoning process.", subject),
		fmt.Sprintf("Please explain the complete methodology for %s in %s with all steps and details.", subject, domain),
		fmt.Sprintf("Can you provide a detailed, step-by-step guide for %s? Include all validation steps and potential issues.", subject),
		fmt.Sprintf("I want to master %s in %s. Give me the comprehensive framework with examples.", subject, domain),
	})

	steps := cotSteps(rec)
	prerequisites := rec.Get("prerequisites").Strings()
	concepts := rec.Get("key_concepts").Strings()

	var reasoning Document
	reasoning.Add("I need to apply %s for this %s problem at %s level.", title, domain, level)
	reasoning.AddIf(description != "", "This framework: %s", description)
	if len(steps) > 0 {
		reasoning.Add("Let me break this down systematically:")
		for i, step := range steps {
			reasoning.Add("Step %d: %s", i+1, step.description)
			reasoning.AddIf(len(step.inputs) > 0, "  Required inputs: %s", strings.Join(step.inputs, ", "))
			reasoning.AddIf(len(step.validation) > 0, "  Validation: %s", strings.Join(step.validation, ", "))
			reasoning.AddIf(len(step.errors) > 0, "  Watch out for: %s", strings.Join(step.errors, ", "))
		}
	}
	reasoning.AddIf(len(prerequisites) > 0, "Prerequisites needed: %s", strings.Join(prerequisites, ", "))
	reasoning.AddIf(len(concepts) > 0, "Key concepts involved: %s", strings.Join(concepts, ", "))

	var answer Document
	answer.Add("For %s in %s, here is the complete systematic approach:", subject, domain)
	answer.AddIf(description != "", "\n**Overview**: %s", description)
	answer.Section("Prerequisites", prerequisites, 0)

	if len(steps) > 0 {
		answer.Add("\n**Detailed Step-by-Step Process**:")
		for i, step := range steps {
			answer.Add("\n**Step %d: %s**", i+1, step.description)
			answer.SubList("Required Inputs", step.inputs)
			answer.SubList("How to Validate", step.validation)
			answer.SubList("Common Pitfalls to Avoid", step.errors)
			answer.SubList("Expected Outcomes", step.outcomes)
		}
	}

	if len(concepts) > 0 {
		answer.Add("\n**Key Concepts Explained**:")
		for _, concept := range concepts {
			answer.Add("• **%s**: Essential for understanding this framework", concept)
		}
	}
	answer.Section("Best Practices", rec.Get("best_practices").Strings(), 0)
	answer.Section("Common Applications", rec.Get("common_applications").Strings(), 0)

	answer.Add("\n**Summary**: This %s framework for %s provides a complete, validated methodology for %s. "+
		"By following these detailed steps and validation criteria, you can systematically approach and solve complex problems while avoiding common pitfalls.",
		level, domain, subject)

	return Exchange{
		Question:  question,
		Reasoning: reasoning.String(),
		Answer:    answer.String(),
	}
}
