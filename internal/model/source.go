package model

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned for a type name outside the recognized set
var ErrUnknownType = errors.New("unknown data source type")

// DataSource tags the record type a conversation was generated from
type DataSource string

const (
	SourceCoT                DataSource = "cot"
	SourceSemanticMemory     DataSource = "semantic_memory"
	SourceEpisodicMemory     DataSource = "episodic_memory"
	SourceProceduralMemory   DataSource = "procedural_memory"
	SourceRealtimeReflection DataSource = "realtime_reflection"
	SourceStrategyReflection DataSource = "strategy_reflection"
	SourceDeepReflection     DataSource = "deep_reflection"
)

// AllSources lists the recognized source types in canonical order
var AllSources = []DataSource{
	SourceCoT,
	SourceSemanticMemory,
	SourceEpisodicMemory,
	SourceProceduralMemory,
	SourceRealtimeReflection,
	SourceStrategyReflection,
	SourceDeepReflection,
}

// ParseDataSource validates a type name
func ParseDataSource(name string) (DataSource, error) {
	for _, s := range AllSources {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Description returns the human-readable description used in dataset metadata
func (s DataSource) Description() string {
	switch s {
	case SourceCoT:
		return "Chain-of-thought reasoning with complete step details and validation"
	case SourceSemanticMemory:
		return "Knowledge networks with concepts, relationships, and attributes"
	case SourceEpisodicMemory:
		return "Experience-based scenarios with timelines and outcomes"
	case SourceProceduralMemory:
		return "Complete step-by-step methodologies with all details"
	case SourceRealtimeReflection:
		return "Rapid in-flight course corrections with quick wins and warning signs"
	case SourceStrategyReflection:
		return "Strategic patterns, opportunities, risks, and recommendations"
	case SourceDeepReflection:
		return "Root causes, long-term implications, and system-level changes"
	default:
		return ""
	}
}
