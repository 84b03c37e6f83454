package rules

import (
	"encoding/json"
	"os"
	"regexp"
	"sync"
)

// Loader loads, validates and caches the rule document, and memoizes
// compiled patterns by pattern text. Safe for concurrent use; at most one
// load/validate/compile sequence runs at a time and concurrent callers
// receive the same cached result.
type Loader struct {
	source   func() ([]byte, error)
	doc      *Document
	loadErr  error
	patterns map[string]*regexp.Regexp

	mu        sync.Mutex
	patternMu sync.RWMutex
	loaded    bool
}

// NewLoader creates a loader reading the document from the given source.
func NewLoader(source func() ([]byte, error)) *Loader {
	return &Loader{
		source:   source,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// NewFileLoader creates a loader reading the document from a JSON file.
func NewFileLoader(path string) *Loader {
	return NewLoader(func() ([]byte, error) {
		return os.ReadFile(path)
	})
}

// Load returns the validated rule document, loading it on first call.
// The result, success or failure, is cached until Clear; a failed load is
// not retried automatically.
func (l *Loader) Load() (*Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.doc, l.loadErr
	}

	l.doc, l.loadErr = l.load()
	l.loaded = true
	return l.doc, l.loadErr
}

func (l *Loader) load() (*Document, error) {
	data, err := l.source()
	if err != nil {
		return nil, newParseError(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	// Eagerly compile every declared pattern so bad syntax fails the load
	// instead of surfacing mid-scan.
	for _, p := range doc.allPatterns() {
		if _, err := l.Compile(p); err != nil {
			return nil, newPatternError(p, err)
		}
	}

	return &doc, nil
}

// Compile returns the compiled form of the given pattern text, reusing a
// previously compiled form when available.
func (l *Loader) Compile(pattern string) (*regexp.Regexp, error) {
	l.patternMu.RLock()
	re, ok := l.patterns[pattern]
	l.patternMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	l.patternMu.Lock()
	l.patterns[pattern] = re
	l.patternMu.Unlock()
	return re, nil
}

// Clear drops the cached document and the compiled-pattern cache. The next
// Load performs a fresh load; used for hot reload and tests.
func (l *Loader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.patternMu.Lock()
	l.patterns = make(map[string]*regexp.Regexp)
	l.patternMu.Unlock()

	l.doc = nil
	l.loadErr = nil
	l.loaded = false
}
