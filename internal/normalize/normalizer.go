package normalize

import (
	"fmt"
	"math/rand/v2"

	"github.com/ppiankov/convset/internal/model"
)

// Exchange is the text produced from one record
type Exchange struct {
	Question  string
	Reasoning string
	Answer    string
}

// Normalizer turns a raw record of one source type into an Exchange.
// Implementations never fail: absent fields fall back to defaults.
type Normalizer interface {
	// Source returns the type tag this normalizer handles
	Source() model.DataSource

	// Normalize renders the question, reasoning and answer for rec.
	// rng selects the question template.
	Normalize(rec model.Record, rng *rand.Rand) Exchange
}

// Registry maps source types to their normalizers
type Registry struct {
	normalizers map[model.DataSource]Normalizer
}

// NewRegistry creates a registry holding every built-in normalizer
func NewRegistry() *Registry {
	registry := &Registry{
		normalizers: make(map[model.DataSource]Normalizer, len(model.AllSources)),
	}

	registry.Register(NewCoTNormalizer())
	registry.Register(NewSemanticNormalizer())
	registry.Register(NewEpisodicNormalizer())
	registry.Register(NewProceduralNormalizer())
	registry.Register(NewRealtimeReflectionNormalizer())
	registry.Register(NewStrategyReflectionNormalizer())
	registry.Register(NewDeepReflectionNormalizer())

	return registry
}

// Register adds or replaces the normalizer for its source type
func (r *Registry) Register(n Normalizer) {
	r.normalizers[n.Source()] = n
}

// Lookup returns the normalizer for source. Unrecognized tags are
// rejected with model.ErrUnknownType rather than defaulted.
func (r *Registry) Lookup(source model.DataSource) (Normalizer, error) {
	n, ok := r.normalizers[source]
	if !ok {
		return nil, fmt.Errorf("%w: no normalizer for %q", model.ErrUnknownType, source)
	}
	return n, nil
}

// Convert normalizes rec and wraps the result into a Conversation
func Convert(n Normalizer, rec model.Record, rng *rand.Rand, systemMessage string) model.Conversation {
	ex := n.Normalize(rec, rng)
	return model.BuildConversation(ex.Question, ex.Reasoning, ex.Answer, n.Source(), systemMessage)
}

// pick chooses one template uniformly. A nil rng always picks the first.
func pick(rng *rand.Rand, templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	if rng == nil {
		return templates[0]
	}
	return templates[rng.IntN(len(templates))]
}
