package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/normalize"
)

var (
	// ErrMissingInput is returned when an input file does not exist
	ErrMissingInput = errors.New("input file not found")

	// ErrMalformedFile is returned when a whole input file cannot be parsed
	ErrMalformedFile = errors.New("malformed input file")
)

// Format is the container layout of an input file
type Format int

const (
	FormatAuto     Format = iota // decide from extension, then content
	FormatDocument               // one JSON array (or a single object)
	FormatLines                  // one JSON object per line
)

func (f Format) String() string {
	switch f {
	case FormatDocument:
		return "json"
	case FormatLines:
		return "jsonl"
	default:
		return "auto"
	}
}

// DetectFormat picks the container layout for path. Known extensions win;
// otherwise a leading '[' means a JSON array document.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatLines
	case ".json":
		return FormatDocument
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatDocument
	}
	return FormatLines
}

// LoadResult holds the conversations produced from one input file
type LoadResult struct {
	Path          string
	Source        model.DataSource
	Format        Format
	Conversations []model.Conversation
	Converted     int // successful conversions
	Skipped       int // malformed or failed records
	Repaired      int // lines recovered by repair mode, included in Converted
}

// Loader reads input files and converts every record with the normalizer
// for the file's source type
type Loader struct {
	registry      *normalize.Registry
	rng           *rand.Rand
	systemMessage string
	repair        bool
	progressEvery int
	logger        *slog.Logger
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithRepair enables jsonrepair on malformed lines before they are skipped
func WithRepair(enabled bool) LoaderOption {
	return func(l *Loader) { l.repair = enabled }
}

// WithProgressEvery logs progress every n conversions (0 disables)
func WithProgressEvery(n int) LoaderOption {
	return func(l *Loader) { l.progressEvery = n }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader. rng is shared with the caller and drives
// question template selection.
func NewLoader(registry *normalize.Registry, rng *rand.Rand, systemMessage string, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry:      registry,
		rng:           rng,
		systemMessage: systemMessage,
		progressEvery: 1000,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load converts every record in path using the normalizer for typeName,
// stopping once limit conversions succeed (0 means no limit). Individual
// bad records are skipped and counted. A missing file, an unparseable
// document or an unknown type yields an error and no conversations.
func (l *Loader) Load(path string, typeName string, limit int) (*LoadResult, error) {
	result := &LoadResult{Path: path}

	source, err := model.ParseDataSource(typeName)
	if err != nil {
		return result, err
	}
	result.Source = source

	normalizer, err := l.registry.Lookup(source)
	if err != nil {
		return result, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return result, fmt.Errorf("read %s: %w", path, err)
	}

	result.Format = DetectFormat(path, data)
	switch result.Format {
	case FormatDocument:
		err = l.loadDocument(result, normalizer, data, limit)
	default:
		l.loadLines(result, normalizer, data, limit)
	}
	if err != nil {
		return result, err
	}

	l.logger.Info("loaded input",
		"path", path,
		"source", source,
		"format", result.Format.String(),
		"converted", result.Converted,
		"skipped", result.Skipped,
		"repaired", result.Repaired)

	return result, nil
}

func (l *Loader) loadDocument(result *LoadResult, n normalize.Normalizer, data []byte, limit int) error {
	doc, err := model.DecodeValue(data)
	if err != nil {
		l.logger.Warn("malformed input file", "path", result.Path, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrMalformedFile, result.Path, err)
	}

	items := doc.List()
	if items == nil {
		items = []model.Value{doc}
	}

	for i, item := range items {
		if limit > 0 && result.Converted >= limit {
			break
		}
		rec := item.Record()
		if rec == nil {
			l.skip(result, i+1, fmt.Errorf("record is %s, not an object", item.Kind()))
			continue
		}
		l.convert(result, n, rec, i+1)
	}
	return nil
}

func (l *Loader) loadLines(result *LoadResult, n normalize.Normalizer, data []byte, limit int) {
	for i, line := range bytes.Split(data, []byte("\n")) {
		if limit > 0 && result.Converted >= limit {
			break
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		lineNum := i + 1
		rec, err := model.DecodeRecord(line)
		if err != nil && l.repair {
			if rec, err = repairRecord(line); err == nil {
				result.Repaired++
				l.logger.Debug("repaired malformed line", "path", result.Path, "line", lineNum)
			}
		}
		if err != nil {
			l.skip(result, lineNum, err)
			continue
		}
		l.convert(result, n, rec, lineNum)
	}
}

func repairRecord(line []byte) (model.Record, error) {
	fixed, err := jsonrepair.JSONRepair(string(line))
	if err != nil {
		return nil, fmt.Errorf("repair: %w", err)
	}
	return model.DecodeRecord([]byte(fixed))
}

// convert runs the normalizer on one record. A panic inside the
// normalizer is contained to that record.
func (l *Loader) convert(result *LoadResult, n normalize.Normalizer, rec model.Record, position int) {
	conv, err := safeConvert(n, rec, l.rng, l.systemMessage)
	if err != nil {
		l.skip(result, position, err)
		return
	}

	result.Conversations = append(result.Conversations, conv)
	result.Converted++

	if l.progressEvery > 0 && result.Converted%l.progressEvery == 0 {
		l.logger.Info("conversion progress", "source", result.Source, "converted", result.Converted)
	}
}

func safeConvert(n normalize.Normalizer, rec model.Record, rng *rand.Rand, systemMessage string) (conv model.Conversation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize %s: %v", n.Source(), r)
		}
	}()
	return normalize.Convert(n, rec, rng, systemMessage), nil
}

func (l *Loader) skip(result *LoadResult, position int, err error) {
	result.Skipped++
	l.logger.Warn("skipping record",
		"path", result.Path,
		"source", result.Source,
		"record", position,
		"error", err)
}

// ReadConverted loads a JSON array of already-converted conversations.
// Entries without exactly three messages are skipped and counted.
func ReadConverted(path string) (*LoadResult, error) {
	result := &LoadResult{Path: path, Format: FormatDocument}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return result, fmt.Errorf("read %s: %w", path, err)
	}

	var conversations []model.Conversation
	if err := json.Unmarshal(data, &conversations); err != nil {
		return result, fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
	}

	for _, conv := range conversations {
		if !conv.Complete() {
			result.Skipped++
			continue
		}
		result.Conversations = append(result.Conversations, conv)
	}
	result.Converted = len(result.Conversations)
	return result, nil
}

// ReadConversations returns the complete conversations stored in path
func ReadConversations(path string) ([]model.Conversation, error) {
	result, err := ReadConverted(path)
	if err != nil {
		return nil, err
	}
	return result.Conversations, nil
}
