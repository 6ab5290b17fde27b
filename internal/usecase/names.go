package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aide/internal/domain"
	"aide/internal/port"
)

// ResolveError reports a name that could not be resolved. Suggested is set
// when a candidate was offered; Declined when the user turned it down.
type ResolveError struct {
	Kind      domain.EntityKind
	Input     string
	Suggested string
	Declined  bool
}

func (e *ResolveError) Error() string {
	if e.Declined {
		return fmt.Sprintf("%s '%s' not found (declined suggestion '%s')", e.Kind, e.Input, e.Suggested)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Input)
}

func (e *ResolveError) Unwrap() error { return domain.ErrNotFound }

// NameResolver resolves user-typed names against a Catalog, asking the user
// to confirm fuzzy suggestions.
type NameResolver struct {
	catalog  *Catalog
	resolver *Resolver
	prompter port.Prompter
	logger   *zap.Logger
}

func NewNameResolver(catalog *Catalog, prompter port.Prompter, logger *zap.Logger) *NameResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameResolver{
		catalog:  catalog,
		resolver: NewResolver(),
		prompter: prompter,
		logger:   logger,
	}
}

// Lookup runs the protocol up to the point where the user would be asked.
func (r *NameResolver) Lookup(kind domain.EntityKind, raw string) (Resolution, error) {
	idx, err := r.catalog.Index(kind)
	if err != nil {
		return Resolution{}, err
	}
	ranker, err := r.catalog.Ranker(kind)
	if err != nil {
		return Resolution{}, err
	}
	return r.resolver.Resolve(idx, ranker, raw), nil
}

// Resolve returns the stored name raw refers to. A fuzzy suggestion is only
// used once the prompter confirms it.
func (r *NameResolver) Resolve(ctx context.Context, kind domain.EntityKind, raw string) (string, error) {
	res, err := r.settle(ctx, kind, raw)
	if err != nil {
		return "", err
	}
	if res.State == StateResolved {
		return res.Name, nil
	}

	rerr := &ResolveError{Kind: kind, Input: raw}
	if res.Candidate != nil {
		rerr.Suggested = res.Candidate.Name
		rerr.Declined = true
	}
	return "", rerr
}

// Find is Resolve for callers that create the record when it is missing: a
// name that does not resolve is reported with found=false instead of an error.
func (r *NameResolver) Find(ctx context.Context, kind domain.EntityKind, raw string) (name string, found bool, err error) {
	res, err := r.settle(ctx, kind, raw)
	if err != nil {
		return "", false, err
	}
	return res.Name, res.State == StateResolved, nil
}

// settle drives the protocol to a terminal state.
func (r *NameResolver) settle(ctx context.Context, kind domain.EntityKind, raw string) (Resolution, error) {
	res, err := r.Lookup(kind, raw)
	if err != nil {
		return Resolution{}, err
	}

	for !res.Terminal() {
		prompt := fmt.Sprintf("'%s' not found. Did you mean '%s'?", raw, res.Candidate.Name)
		accept, err := r.prompter.Confirm(ctx, prompt)
		if err != nil {
			return Resolution{}, fmt.Errorf("confirm suggestion: %w", err)
		}
		res = res.Confirm(accept)
	}

	r.logger.Debug("resolved name",
		zap.Stringer("kind", kind),
		zap.String("input", raw),
		zap.Stringer("state", res.State),
		zap.String("name", res.Name),
		zap.Bool("exact", res.Exact),
	)
	return res, nil
}
