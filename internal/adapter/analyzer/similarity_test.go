package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"a", "a", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"databse_url", "database_url", 1},
		{"cmds", "commands", 4},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"debug_mode", "debug_mode", 1.0},
		{"Debug_Mode", "debug_mode", 1.0},
		{"abc", "xyz", 0.0},
		{"xyz123", "commands", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"cmds", "commands", 0.5},
		{"databse_url", "database_url", 11.0 / 12.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-12)
			assert.Equal(t, Similarity(tt.a, tt.b), Similarity(tt.b, tt.a))
		})
	}
}

func TestSimilarity_IdentityOnlyForEqualNormalizedStrings(t *testing.T) {
	names := []string{"task_log", "Task_Log", "task-log", "tasklog", "a", ""}
	for _, a := range names {
		for _, b := range names {
			s := Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
			if Normalize(a) == Normalize(b) {
				assert.Equal(t, 1.0, s, "%q vs %q", a, b)
			} else {
				assert.Less(t, s, 1.0, "%q vs %q", a, b)
			}
		}
	}
}
