package retriever

import (
	"sort"

	"aide/internal/adapter/analyzer"
	"aide/internal/adapter/index"
	"aide/internal/domain"
)

const (
	// TFIDFWeight and StringWeight blend the two similarity components.
	TFIDFWeight  = 0.3
	StringWeight = 0.7
)

// Matcher ranks every document of an index against a raw query by a blend of
// TF-IDF cosine similarity and character-level similarity.
type Matcher struct {
	index *index.Index
}

func NewMatcher(idx *index.Index) *Matcher {
	return &Matcher{index: idx}
}

// Query scores every indexed name and returns them best first. The query is
// weighted against the current vocabulary, documents use their cached vectors.
func (m *Matcher) Query(raw string) []domain.Candidate {
	if m.index.TotalDocuments() == 0 {
		return nil
	}

	queryVec := m.index.QueryVector(raw)

	results := make([]domain.Candidate, 0, m.index.TotalDocuments())
	m.index.Each(func(doc *index.Document) {
		results = append(results, Score(raw, queryVec, doc))
	})

	SortCandidates(results)
	return results
}

// Generation reports the generation of the underlying index.
func (m *Matcher) Generation() uint64 {
	return m.index.Generation()
}

// Score computes the candidate score of one document.
func Score(raw string, queryVec index.Vector, doc *index.Document) domain.Candidate {
	tfidf := index.Cosine(queryVec, doc.Vector)
	str := analyzer.Similarity(raw, doc.Name)
	return domain.Candidate{
		Name:        doc.Name,
		TFIDFScore:  tfidf,
		StringScore: str,
		Score:       TFIDFWeight*tfidf + StringWeight*str,
	}
}

// SortCandidates orders candidates by score, then string score, both
// descending, then by name ascending.
func SortCandidates(results []domain.Candidate) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.StringScore != b.StringScore {
			return a.StringScore > b.StringScore
		}
		return a.Name < b.Name
	})
}
