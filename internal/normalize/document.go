package normalize

import (
	"fmt"
	"strings"
)

const (
	bullet    = "• "
	subBullet = "  - "
)

// Document collects lines of text and joins them with newlines.
// Sections are only emitted when they have content.
type Document struct {
	lines []string
}

// Add appends one formatted line
func (d *Document) Add(format string, args ...any) {
	if len(args) == 0 {
		d.lines = append(d.lines, format)
		return
	}
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

// AddIf appends a formatted line when cond holds
func (d *Document) AddIf(cond bool, format string, args ...any) {
	if cond {
		d.Add(format, args...)
	}
}

// Section appends a bold heading preceded by a blank line and one bullet
// per item, keeping at most limit items (0 keeps all). It reports whether
// anything was written.
func (d *Document) Section(heading string, items []string, limit int) bool {
	items = head(items, limit)
	if len(items) == 0 {
		return false
	}
	d.Add("\n**%s**:", heading)
	for _, item := range items {
		d.lines = append(d.lines, bullet+item)
	}
	return true
}

// SubList appends an italic label and one indented dash per item
func (d *Document) SubList(label string, items []string) bool {
	if len(items) == 0 {
		return false
	}
	d.Add("*%s:*", label)
	for _, item := range items {
		d.lines = append(d.lines, subBullet+item)
	}
	return true
}

// Len returns the number of lines collected so far
func (d *Document) Len() int {
	return len(d.lines)
}

// String joins the collected lines
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// head returns the first n items, or all of them when n <= 0
func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// truncate shortens s to n runes, appending "..." when it was cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
