package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/pipeline"
	"github.com/ppiankov/convset/internal/quality"
)

const banner = "═══════════════════════════════════════════════════════════"

func printBanner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n\n", banner, title, banner)
}

// printFiles lists the outcome of every input file
func printFiles(w io.Writer, files []pipeline.FileResult) {
	for _, f := range files {
		name := filepath.Base(f.Input.Path)
		if f.Err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", name, f.Err)
			continue
		}
		line := fmt.Sprintf("✓ %s: %d conversations", name, f.Result.Converted)
		if f.Result.Skipped > 0 {
			line += fmt.Sprintf(", %d skipped", f.Result.Skipped)
		}
		if f.Result.Repaired > 0 {
			line += fmt.Sprintf(", %d repaired", f.Result.Repaired)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

// printQuality renders the per-file quality reports
func printQuality(w io.Writer, reports []model.QualityReport) {
	if len(reports) == 0 {
		return
	}
	printBanner(w, "Quality Analysis")
	for _, r := range reports {
		fmt.Fprintf(w, "  %s\n", filepath.Base(r.Source))
		fmt.Fprintf(w, "    Total:          %d\n", r.Total)
		fmt.Fprintf(w, "    Complete:       %d (%.1f%%)\n", r.Valid, r.ValidityRate)
		fmt.Fprintf(w, "    Think tags:     %d (%.1f%%)\n", r.HasThinkTag, r.ThinkTagRate)
		fmt.Fprintf(w, "    Avg length:     %.0f chars\n", r.AvgLength)
		fmt.Fprintf(w, "    Sample lengths: %v\n\n", r.SampleLengths)
	}
}

// printSplits renders split sizes and their source distribution
func printSplits(w io.Writer, md model.DatasetMetadata, written []string) {
	printBanner(w, "Dataset Complete")
	fmt.Fprintf(w, "  Total:  %d conversations\n\n", md.TotalConversations)
	for _, name := range model.SplitNames {
		s := md.Splits[name]
		fmt.Fprintf(w, "  %-11s %6d (%.1f%%)\n", name+":", s.Conversations, s.Percentage)
		for _, src := range model.AllSources {
			if n := s.DataSourceDistribution[string(src)]; n > 0 {
				fmt.Fprintf(w, "      %-20s %d\n", src, n)
			}
		}
		if n := s.DataSourceDistribution["unknown"]; n > 0 {
			fmt.Fprintf(w, "      %-20s %d\n", "unknown", n)
		}
	}
	fmt.Fprintln(w)
	for _, path := range written {
		fmt.Fprintf(w, "  ✓ %s\n", path)
	}
	fmt.Fprintln(w)
}

// printSample shows the start of the first chain-of-thought conversation
// in the training split, as a spot check of answer completeness
func printSample(w io.Writer, train []model.Conversation) {
	conv, ok := quality.FindDetailedSample(train, model.SourceCoT, 100)
	if !ok || len(conv.Messages) < 3 {
		return
	}
	content := conv.AssistantContent()
	runes := []rune(content)
	if len(runes) > 800 {
		content = string(runes[:800]) + "..."
	}

	printBanner(w, "Sample Conversation (cot)")
	fmt.Fprintf(w, "  Question: %s\n\n%s\n\n", conv.Messages[1].Content, content)
	fmt.Fprintf(w, "  Detail markers present: %v\n\n", quality.HasDetailMarkers(conv.AssistantContent()))
}
