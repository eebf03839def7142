// Package style defines report framing styles for metrictree reports.
//
// A Style is a named set of literal byte sequences that frame a report:
// the header line, the footer block, the per-depth indent unit, the leaf
// marker, and the line terminator. The package maintains a concurrent-safe
// registry of styles so alternate report formats can be selected by name,
// for example from a configuration file.
//
// The Classic style reproduces the canonical report format byte for byte:
//
//	 -!- R E P O R T -!-
//	 -  hello
//	   -  2
//	 -@- _ _ _ _ _ _ -@-
//
// followed by two blank lines.
package style

import (
	"sort"
	"sync"
)

// Style describes the literal text used to frame a report.
// All fields are written verbatim; Header, Footer, and Suffix carry
// their own newlines.
type Style struct {
	// Name identifies the style in the registry.
	Name string

	// Header is written once when a report begins.
	Header string

	// Footer is written once when a report ends, on every exit path.
	Footer string

	// Indent is repeated once per depth level beyond the first.
	Indent string

	// Marker precedes each rendered value.
	Marker string

	// Suffix terminates each rendered line.
	Suffix string
}

// Classic is the default report style.
var Classic = Style{
	Name:   "classic",
	Header: " -!- R E P O R T -!-\n",
	Footer: " -@- _ _ _ _ _ _ -@-\n\n\n",
	Indent: "  ",
	Marker: " -  ",
	Suffix: "\n",
}

var (
	mu     sync.RWMutex
	styles = map[string]Style{Classic.Name: Classic}
)

// Register adds or replaces a style in the registry.
//
// Panics if the style's name is empty.
func Register(s Style) {
	if s.Name == "" {
		panic("style: style name cannot be empty")
	}
	mu.Lock()
	defer mu.Unlock()
	styles[s.Name] = s
}

// Get returns the style for a name and whether it exists.
func Get(name string) (Style, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := styles[name]
	return s, ok
}

// MustGet returns the style for a name, panicking if not registered.
func MustGet(name string) Style {
	s, ok := Get(name)
	if !ok {
		panic("style: style not registered: " + name)
	}
	return s
}

// Names returns the registered style names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
