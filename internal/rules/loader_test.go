package rules

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validDoc returns a minimal document that passes validation. Tests mutate
// the returned value before marshaling.
func validDoc() map[string]any {
	return map[string]any{
		"version": SupportedVersion,
		"banks": []map[string]any{
			{
				"code":           "HDFC",
				"senderPatterns": []string{"(?i)hdfc"},
				"patterns": map[string]any{
					"amount":   []string{`(?i)rs\.?\s*([0-9,]+(?:\.[0-9]{1,2})?)`},
					"merchant": []string{`(?i)\bto\s+(\S+)`},
				},
			},
		},
		"fallbackPatterns": map[string]any{
			"amount":   []string{`([0-9,]+\.[0-9]{2})`},
			"merchant": []string{`(?i)\bat\s+(\S+)`},
		},
	}
}

func loaderFor(t *testing.T, doc map[string]any) *Loader {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return NewLoader(func() ([]byte, error) {
		return data, nil
	})
}

func TestLoader_Load_Valid(t *testing.T) {
	doc, err := loaderFor(t, validDoc()).Load()
	require.NoError(t, err)
	assert.Equal(t, SupportedVersion, doc.Version)
	assert.Len(t, doc.Banks, 1)
	assert.Equal(t, "HDFC", doc.Banks[0].Code)
}

func TestLoader_Load_ParseError(t *testing.T) {
	loader := NewLoader(func() ([]byte, error) {
		return []byte("{not json"), nil
	})

	_, err := loader.Load()
	require.Error(t, err)

	var ruleErr *Error
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, KindParse, ruleErr.Kind)
}

func TestLoader_Load_ValidationFailures(t *testing.T) {
	tests := []struct {
		mutate func(doc map[string]any)
		name   string
	}{
		{
			name: "unsupported version",
			mutate: func(doc map[string]any) {
				doc["version"] = SupportedVersion + 1
			},
		},
		{
			name: "no banks",
			mutate: func(doc map[string]any) {
				doc["banks"] = []map[string]any{}
			},
		},
		{
			name: "blank bank code",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["code"] = "   "
			},
		},
		{
			name: "no sender patterns",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["senderPatterns"] = []string{}
			},
		},
		{
			name: "no amount patterns",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["patterns"].(map[string]any)["amount"] = []string{}
			},
		},
		{
			name: "no merchant patterns",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["patterns"].(map[string]any)["merchant"] = []string{}
			},
		},
		{
			name: "weights sum too low",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["confidenceWeights"] = map[string]float64{
					"senderMatch":               0.1,
					"amountExtraction":          0.1,
					"merchantExtraction":        0.1,
					"dateExtraction":            0.1,
					"referenceNumberExtraction": 0.1,
				}
			},
		},
		{
			name: "weights sum too high",
			mutate: func(doc map[string]any) {
				doc["banks"].([]map[string]any)[0]["confidenceWeights"] = map[string]float64{
					"senderMatch":               0.5,
					"amountExtraction":          0.5,
					"merchantExtraction":        0.5,
					"dateExtraction":            0.1,
					"referenceNumberExtraction": 0.1,
				}
			},
		},
		{
			name: "no fallback amount patterns",
			mutate: func(doc map[string]any) {
				doc["fallbackPatterns"].(map[string]any)["amount"] = []string{}
			},
		},
		{
			name: "no fallback merchant patterns",
			mutate: func(doc map[string]any) {
				doc["fallbackPatterns"].(map[string]any)["merchant"] = []string{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)

			_, err := loaderFor(t, doc).Load()
			require.Error(t, err)

			var ruleErr *Error
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, KindValidation, ruleErr.Kind)
		})
	}
}

func TestLoader_Load_PatternCompileError(t *testing.T) {
	doc := validDoc()
	doc["fallbackPatterns"].(map[string]any)["merchant"] = []string{"(unclosed"}

	_, err := loaderFor(t, doc).Load()
	require.Error(t, err)

	var ruleErr *Error
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, KindPatternCompile, ruleErr.Kind)
	assert.Equal(t, "(unclosed", ruleErr.Pattern)
}

func TestLoader_Load_CachesResult(t *testing.T) {
	var calls int32
	data, err := json.Marshal(validDoc())
	require.NoError(t, err)

	loader := NewLoader(func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return data, nil
	})

	first, err := loader.Load()
	require.NoError(t, err)
	second, err := loader.Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoader_Load_CachesFailure(t *testing.T) {
	var calls int32
	loader := NewLoader(func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("boom")
	})

	_, err := loader.Load()
	require.Error(t, err)
	_, err = loader.Load()
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "failed load should not retry automatically")
}

func TestLoader_Load_Concurrent(t *testing.T) {
	var calls int32
	data, err := json.Marshal(validDoc())
	require.NoError(t, err)

	loader := NewLoader(func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return data, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, loadErr := loader.Load()
			assert.NoError(t, loadErr)
			assert.NotNil(t, doc)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "at most one load must run")
}

func TestLoader_Clear(t *testing.T) {
	var calls int32
	data, err := json.Marshal(validDoc())
	require.NoError(t, err)

	loader := NewLoader(func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return data, nil
	})

	_, err = loader.Load()
	require.NoError(t, err)

	loader.Clear()

	_, err = loader.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoader_Compile_Memoized(t *testing.T) {
	loader := NewLoader(nil)

	first, err := loader.Compile(`(?i)hdfc`)
	require.NoError(t, err)
	second, err := loader.Compile(`(?i)hdfc`)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoader_Compile_Invalid(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Compile("(unclosed")
	assert.Error(t, err)
}

func TestDocument_MatchBank(t *testing.T) {
	loader := loaderFor(t, validDoc())
	doc, err := loader.Load()
	require.NoError(t, err)

	assert.NotNil(t, doc.MatchBank("VM-HDFCBK", loader.Compile))
	assert.Nil(t, doc.MatchBank("VM-UNKNOWN", loader.Compile))
}

func TestDefaultLoader(t *testing.T) {
	doc, err := NewDefaultLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, SupportedVersion, doc.Version)
	assert.NotEmpty(t, doc.Banks)
	assert.NotEmpty(t, doc.FallbackPatterns.Amount)
	assert.NotEmpty(t, doc.FallbackPatterns.Merchant)
}
