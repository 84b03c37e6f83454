package rules

import _ "embed"

// defaultDocument ships with the binary so the pipeline works without an
// on-disk rule document. A --rules flag overrides it.
//
//go:embed default_rules.json
var defaultDocument []byte

// NewDefaultLoader creates a loader backed by the embedded rule document.
func NewDefaultLoader() *Loader {
	return NewLoader(func() ([]byte, error) {
		return defaultDocument, nil
	})
}
