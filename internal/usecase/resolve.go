package usecase

import (
	"aide/internal/adapter/index"
	"aide/internal/domain"
)

// AcceptanceThreshold is the lowest combined score offered as a suggestion.
const AcceptanceThreshold = 0.3

// State is the position of a name in the resolution protocol.
type State int

const (
	StateExact State = iota
	StateFuzzy
	StateSuggested
	StateResolved
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateExact:
		return "exact"
	case StateFuzzy:
		return "fuzzy"
	case StateSuggested:
		return "suggested"
	case StateResolved:
		return "resolved"
	case StateNotFound:
		return "not_found"
	}
	return "unknown"
}

// Resolution is the outcome of resolving one user-typed name. Name is set in
// the Resolved state only; Candidate is set in Suggested and kept when the
// suggestion is accepted.
type Resolution struct {
	State     State
	Input     string
	Name      string
	Candidate *domain.Candidate
	// Exact reports that Name was matched without scoring.
	Exact bool
}

// Ranker ranks the documents of an index against a raw query, best first.
type Ranker interface {
	Query(raw string) []domain.Candidate
}

// Resolver drives a raw name through exact lookup and fuzzy matching.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns Resolved for an exact (or case-insensitive) match without
// consulting ranker, Suggested when the best candidate scores at least
// AcceptanceThreshold, and NotFound otherwise.
func (r *Resolver) Resolve(idx *index.Index, ranker Ranker, raw string) Resolution {
	if name, ok := idx.Lookup(raw); ok {
		return Resolution{State: StateResolved, Input: raw, Name: name, Exact: true}
	}

	candidates := ranker.Query(raw)
	if len(candidates) == 0 || candidates[0].Score < AcceptanceThreshold {
		return Resolution{State: StateNotFound, Input: raw}
	}

	best := candidates[0]
	return Resolution{State: StateSuggested, Input: raw, Candidate: &best}
}

// Confirm applies the user's answer to a suggestion. Accepting moves to
// Resolved with the suggested name, declining moves to NotFound. Any other
// state is returned unchanged.
func (res Resolution) Confirm(accept bool) Resolution {
	if res.State != StateSuggested {
		return res
	}
	if accept {
		res.State = StateResolved
		res.Name = res.Candidate.Name
		return res
	}
	res.State = StateNotFound
	return res
}

// Terminal reports whether no further transition is possible.
func (res Resolution) Terminal() bool {
	return res.State == StateResolved || res.State == StateNotFound
}
