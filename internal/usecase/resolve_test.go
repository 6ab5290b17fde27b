package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/adapter/analyzer"
	"aide/internal/adapter/index"
	"aide/internal/adapter/retriever"
	"aide/internal/domain"
)

type spyRanker struct {
	inner *retriever.Matcher
	calls int
}

func (s *spyRanker) Query(raw string) []domain.Candidate {
	s.calls++
	return s.inner.Query(raw)
}

func buildIndex(names ...string) (*index.Index, *spyRanker) {
	idx := index.Build(analyzer.NewTokenizer(), index.NewVectorizer(index.TFRaw), names)
	return idx, &spyRanker{inner: retriever.NewMatcher(idx)}
}

func TestResolver_ExactMatchSkipsScoring(t *testing.T) {
	idx, spy := buildIndex("database_url", "api_endpoint", "debug_mode")
	r := NewResolver()

	res := r.Resolve(idx, spy, "database_url")
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "database_url", res.Name)
	assert.True(t, res.Exact)
	assert.Nil(t, res.Candidate)

	res = r.Resolve(idx, spy, "DATABASE_URL")
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "database_url", res.Name)

	assert.Zero(t, spy.calls)
}

func TestResolver_Suggested(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		query     string
		suggested string
		score     float64
	}{
		{"typo", []string{"database_url", "api_endpoint", "debug_mode"}, "databse_url", "database_url", 0.7644204715156078},
		{"abbreviation", []string{"commands"}, "cmds", "commands", 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, spy := buildIndex(tt.names...)
			res := NewResolver().Resolve(idx, spy, tt.query)

			require.Equal(t, StateSuggested, res.State)
			require.NotNil(t, res.Candidate)
			assert.Equal(t, tt.suggested, res.Candidate.Name)
			assert.InDelta(t, tt.score, res.Candidate.Score, 1e-9)
			assert.Empty(t, res.Name)
			assert.Equal(t, 1, spy.calls)
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	idx, spy := buildIndex("database_url", "api_endpoint", "debug_mode")
	res := NewResolver().Resolve(idx, spy, "xyz123")
	assert.Equal(t, StateNotFound, res.State)
	assert.Nil(t, res.Candidate)
	assert.True(t, res.Terminal())

	empty, emptySpy := buildIndex()
	res = NewResolver().Resolve(empty, emptySpy, "anything")
	assert.Equal(t, StateNotFound, res.State)
}

func TestResolution_Confirm(t *testing.T) {
	idx, spy := buildIndex("commands")
	suggested := NewResolver().Resolve(idx, spy, "cmds")
	require.Equal(t, StateSuggested, suggested.State)
	assert.False(t, suggested.Terminal())

	accepted := suggested.Confirm(true)
	assert.Equal(t, StateResolved, accepted.State)
	assert.Equal(t, "commands", accepted.Name)
	assert.False(t, accepted.Exact)

	declined := suggested.Confirm(false)
	assert.Equal(t, StateNotFound, declined.State)
	assert.Empty(t, declined.Name)
	assert.Equal(t, "commands", declined.Candidate.Name)

	// Terminal states ignore further answers.
	assert.Equal(t, accepted, accepted.Confirm(false))
	assert.Equal(t, declined, declined.Confirm(true))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "suggested", StateSuggested.String())
	assert.Equal(t, "not_found", StateNotFound.String())
	assert.Equal(t, "unknown", State(42).String())
}
