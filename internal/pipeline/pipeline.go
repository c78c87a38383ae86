package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/normalize"
	"github.com/ppiankov/convset/internal/quality"
	"github.com/ppiankov/convset/internal/split"
)

// conversionVersion tags conversion_info.json
const conversionVersion = "fixed_complete_answers"

// Pipeline orchestrates conversion, splitting and rendering for one run.
// It owns the run's single random source, seeded once from the config.
type Pipeline struct {
	config   *model.Config
	rng      *rand.Rand
	loader   *Loader
	analyzer *quality.Analyzer
	renderer *Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seed := uint64(cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))

	return &Pipeline{
		config: cfg,
		rng:    rng,
		loader: NewLoader(normalize.NewRegistry(), rng, cfg.SystemMessage,
			WithRepair(cfg.Loader.Repair),
			WithProgressEvery(cfg.Loader.ProgressEvery),
			WithLogger(logger)),
		analyzer: quality.NewAnalyzer(),
		renderer: NewRenderer(),
		logger:   logger,
		now:      time.Now,
	}
}

// FileResult is the outcome of loading one configured input
type FileResult struct {
	Input  model.InputConfig
	Result *LoadResult
	Err    error // non-fatal: missing, malformed or unknown-type inputs
}

// ConvertResult holds every file outcome and the aggregated corpus in
// input order
type ConvertResult struct {
	Files  []FileResult
	Corpus []model.Conversation
}

// Converted returns the total number of successful conversions
func (r *ConvertResult) Converted() int {
	return len(r.Corpus)
}

// BuildResult is the outcome of a full build or split run
type BuildResult struct {
	Files    []FileResult
	Quality  []model.QualityReport
	Corpus   []model.Conversation
	Split    *split.Result
	Metadata model.DatasetMetadata
	Written  []string
}

// ResolveInput returns the path of an input relative to the input dir
func (p *Pipeline) ResolveInput(in model.InputConfig) string {
	if filepath.IsAbs(in.Path) || p.config.InputDir == "" {
		return in.Path
	}
	return filepath.Join(p.config.InputDir, in.Path)
}

// Convert loads every input in order. Per-file failures are logged and
// recorded; they never stop the run.
func (p *Pipeline) Convert(inputs []model.InputConfig) *ConvertResult {
	out := &ConvertResult{}

	for _, in := range inputs {
		path := p.ResolveInput(in)
		res, err := p.loader.Load(path, in.Type, in.Cap)
		if err != nil {
			p.logInputError(path, in.Type, err)
			res.Conversations = nil
		} else {
			out.Corpus = append(out.Corpus, res.Conversations...)
		}
		out.Files = append(out.Files, FileResult{Input: in, Result: res, Err: err})
	}

	return out
}

func (p *Pipeline) logInputError(path, typeName string, err error) {
	switch {
	case errors.Is(err, ErrMissingInput):
		p.logger.Warn("input not found, skipping", "path", path, "type", typeName)
	case errors.Is(err, model.ErrUnknownType):
		p.logger.Warn("no converter for type, skipping", "path", path, "type", typeName)
	default:
		p.logger.Error("input failed, skipping", "path", path, "type", typeName, "error", err)
	}
}

// WriteConverted writes one conversation file per converted input plus
// conversion_info.json into dir
func (p *Pipeline) WriteConverted(result *ConvertResult, dir string) ([]string, error) {
	info := model.ConversionInfo{
		RunID:          uuid.NewString(),
		ConversionDate: p.now().Format(time.RFC3339),
		Version:        conversionVersion,
		Improvements:   model.ConversionImprovements,
		Converted:      make(map[string]int),
		Skipped:        make(map[string]int),
	}

	var written []string
	for _, f := range result.Files {
		if f.Err != nil || f.Result == nil {
			continue
		}
		info.Converted[f.Input.Type] += f.Result.Converted
		info.Skipped[f.Input.Type] += f.Result.Skipped
		info.TotalConversations += f.Result.Converted

		if len(f.Result.Conversations) == 0 {
			continue
		}
		path := filepath.Join(dir, ConvertedName(f.Input))
		if err := p.renderer.RenderJSON(f.Result.Conversations, path); err != nil {
			return written, fmt.Errorf("write converted %s: %w", f.Input.Type, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, ConversionInfoFile)
	if err := p.renderer.RenderJSON(info, path); err != nil {
		return written, fmt.Errorf("write conversion info: %w", err)
	}
	return append(written, path), nil
}

// ConvertedName returns the file name a converted input is written to
func ConvertedName(in model.InputConfig) string {
	if in.Output != "" {
		return in.Output
	}
	return "rich_sharegpt_" + in.Type + ".json"
}

// ConvertedFiles lists the converted files of the inputs selected for
// splitting, in input order
func (p *Pipeline) ConvertedFiles() []string {
	var paths []string
	for _, in := range p.config.Inputs {
		if p.config.Split.IncludesSource(in.Type) {
			paths = append(paths, filepath.Join(p.config.ConvertedDir, ConvertedName(in)))
		}
	}
	return paths
}

// Build converts the configured inputs, keeps the sources selected for
// splitting, splits them and writes the dataset into the output dir.
func (p *Pipeline) Build() (*BuildResult, error) {
	converted := p.Convert(p.config.Inputs)

	var corpus []model.Conversation
	var reports []model.QualityReport
	for _, f := range converted.Files {
		if f.Err != nil || !p.config.Split.IncludesSource(f.Input.Type) {
			continue
		}
		corpus = append(corpus, f.Result.Conversations...)
		reports = append(reports, p.analyzer.Analyze(f.Input.Path, f.Result.Conversations))
	}

	result, err := p.finish(corpus, p.splitSources())
	if err != nil {
		return nil, err
	}
	result.Files = converted.Files
	result.Quality = reports
	return result, nil
}

// SplitConverted loads previously converted conversation files, splits
// them and writes the dataset. Missing or malformed files are skipped, as
// are entries that are not complete conversations.
func (p *Pipeline) SplitConverted(paths []string) (*BuildResult, error) {
	var corpus []model.Conversation
	var reports []model.QualityReport
	var files []FileResult

	for _, path := range paths {
		loaded, err := ReadConverted(path)
		files = append(files, FileResult{
			Input:  model.InputConfig{Path: path},
			Result: loaded,
			Err:    err,
		})
		if err != nil {
			p.logInputError(path, "", err)
			continue
		}
		if loaded.Skipped > 0 {
			p.logger.Warn("skipping incomplete conversations", "path", path, "skipped", loaded.Skipped)
		}
		convs := loaded.Conversations
		p.logger.Info("loaded converted file", "path", path, "conversations", len(convs))
		corpus = append(corpus, convs...)
		reports = append(reports, p.analyzer.Analyze(filepath.Base(path), convs))
	}

	result, err := p.finish(corpus, p.splitSources())
	if err != nil {
		return nil, err
	}
	result.Files = files
	result.Quality = reports
	return result, nil
}

// finish splits corpus with the run's random source and writes the
// splits plus metadata. Write failures are returned; nothing else fails.
func (p *Pipeline) finish(corpus []model.Conversation, sources []model.DataSource) (*BuildResult, error) {
	result := split.SplitWith(p.rng, corpus, split.RatiosFrom(p.config.Split.Ratios))
	metadata := BuildMetadata(p.config.Dataset, sources, result, p.now())

	written, err := p.renderer.RenderSplits(result, metadata, p.config.OutputDir)
	if err != nil {
		return nil, err
	}

	for _, name := range model.SplitNames {
		p.logger.Info("wrote split", "split", name,
			"conversations", metadata.Splits[name].Conversations,
			"distribution", metadata.Splits[name].DataSourceDistribution)
	}

	return &BuildResult{
		Corpus:   corpus,
		Split:    result,
		Metadata: metadata,
		Written:  written,
	}, nil
}

// splitSources lists the recognized sources selected for splitting
func (p *Pipeline) splitSources() []model.DataSource {
	var sources []model.DataSource
	for _, s := range model.AllSources {
		if p.config.Split.IncludesSource(string(s)) {
			sources = append(sources, s)
		}
	}
	return sources
}
