// Package language provides a local lookup table of languages supported for
// syntax highlighting. The table is built once from the compiled-in chroma
// lexer registry and is immutable afterwards, so lookups are safe for
// concurrent use without synchronization.
package language

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Info describes a single supported language. Values returned by lookups
// share the table's backing slices and must be treated as read-only.
type Info struct {
	// Name is the display name, e.g. "Go" or "C++".
	Name string
	// Aliases are alternative names the language is known by.
	Aliases []string
	// Extensions are file extensions without the leading dot.
	Extensions []string
	// Mode is the identifier an editor would use to highlight the language.
	Mode string
	// Color is the hex display color, empty when none is known.
	Color string
}

// Table is an immutable language lookup table. Construct with NewTable or
// use the shared Default table.
type Table struct {
	languages []Info
	byName    map[string]int
	byExt     map[string]int
}

// NewTable builds a table from the chroma lexer registry.
func NewTable() *Table {
	t := &Table{
		byName: make(map[string]int),
		byExt:  make(map[string]int),
	}

	for _, lexer := range lexers.GlobalLexerRegistry.Lexers {
		cfg := lexer.Config()
		if cfg == nil || cfg.Name == "" {
			continue
		}

		info := Info{
			Name:       cfg.Name,
			Aliases:    cfg.Aliases,
			Extensions: extensionsFromGlobs(cfg.Filenames),
			Mode:       modeFor(cfg.Name, cfg.Aliases),
			Color:      colors[strings.ToLower(cfg.Name)],
		}

		idx := len(t.languages)
		t.languages = append(t.languages, info)

		t.index(t.byName, cfg.Name, idx)
		for _, alias := range cfg.Aliases {
			t.index(t.byName, alias, idx)
		}
		for _, ext := range info.Extensions {
			t.index(t.byExt, ext, idx)
		}
	}

	return t
}

// index registers a key for idx unless an earlier language already owns it.
func (t *Table) index(m map[string]int, key string, idx int) {
	key = strings.ToLower(key)
	if key == "" {
		return
	}
	if _, taken := m[key]; !taken {
		m[key] = idx
	}
}

// FindByName looks up a language by display name or alias. Matching is a
// case-insensitive exact match. It reports false when the language is
// unknown; absence is a normal outcome, not an error.
func (t *Table) FindByName(name string) (Info, bool) {
	idx, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Info{}, false
	}
	return t.languages[idx], true
}

// FindByExtension looks up a language by file extension, with or without
// the leading dot. Matching is case-insensitive; unknown extensions report
// false.
func (t *Table) FindByExtension(ext string) (Info, bool) {
	idx, ok := t.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return Info{}, false
	}
	return t.languages[idx], true
}

// All returns every language in the table. The returned slice is the
// table's own backing storage and must not be modified.
func (t *Table) All() []Info {
	return t.languages
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared process-wide table, built on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// FindByName looks up a language in the Default table.
func FindByName(name string) (Info, bool) {
	return Default().FindByName(name)
}

// FindByExtension looks up an extension in the Default table.
func FindByExtension(ext string) (Info, bool) {
	return Default().FindByExtension(ext)
}

// extensionsFromGlobs extracts plain extensions from lexer filename globs,
// keeping "*.go" as "go" and skipping patterns like "Makefile" or
// "*.txt[0-9]" that are not simple extension matches.
func extensionsFromGlobs(globs []string) []string {
	var exts []string
	for _, glob := range globs {
		ext, ok := strings.CutPrefix(glob, "*.")
		if !ok || ext == "" || strings.ContainsAny(ext, "*?[") {
			continue
		}
		exts = append(exts, strings.ToLower(ext))
	}
	return exts
}

// modeFor picks the editor mode identifier: the primary alias when one
// exists, otherwise the lowercased display name.
func modeFor(name string, aliases []string) string {
	if len(aliases) > 0 {
		return aliases[0]
	}
	return strings.ToLower(name)
}

// colors maps lowercased language names to display colors. Languages
// without an entry have no known color, mirroring the upstream data where
// color is optional.
var colors = map[string]string{
	"c":           "#555555",
	"c#":          "#178600",
	"c++":         "#f34b7d",
	"clojure":     "#db5855",
	"crystal":     "#000100",
	"css":         "#563d7c",
	"d":           "#ba595e",
	"dart":        "#00b4ab",
	"elixir":      "#6e4a7e",
	"elm":         "#60b5cc",
	"erlang":      "#b83998",
	"go":          "#00add8",
	"haskell":     "#5e5086",
	"html":        "#e34c26",
	"java":        "#b07219",
	"javascript":  "#f1e05a",
	"json":        "#292929",
	"julia":       "#a270ba",
	"kotlin":      "#a97bff",
	"lua":         "#000080",
	"markdown":    "#083fa1",
	"nim":         "#ffc200",
	"objective-c": "#438eff",
	"ocaml":       "#3be133",
	"perl":        "#0298c3",
	"php":         "#4f5d95",
	"powershell":  "#012456",
	"python":      "#3572a5",
	"r":           "#198ce7",
	"ruby":        "#701516",
	"rust":        "#dea584",
	"scala":       "#c22d40",
	"scheme":      "#1e4aec",
	"swift":       "#f05138",
	"typescript":  "#3178c6",
	"vue":         "#41b883",
	"yaml":        "#cb171e",
	"zig":         "#ec915c",
}
