package index

import (
	"fmt"
	"math"
)

// TFScaling selects how raw term counts are turned into term weights.
type TFScaling int

const (
	// TFRaw uses the raw count.
	TFRaw TFScaling = iota
	// TFLog uses 1 + ln(count).
	TFLog
)

// ParseTFScaling maps a configuration value to a TFScaling.
func ParseTFScaling(s string) (TFScaling, error) {
	switch s {
	case "", "raw":
		return TFRaw, nil
	case "log":
		return TFLog, nil
	}
	return TFRaw, fmt.Errorf("unknown tf scaling %q (want raw or log)", s)
}

// Vector is a sparse term -> weight mapping.
type Vector map[string]float64

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Stats exposes the collection statistics the vectorizer weighs terms against.
type Stats interface {
	DocumentFrequency(term string) int
	TotalDocuments() int
}

// Vectorizer computes TF-IDF weights.
type Vectorizer struct {
	scaling TFScaling
}

func NewVectorizer(scaling TFScaling) *Vectorizer {
	return &Vectorizer{scaling: scaling}
}

// TF returns the weight of a term occurring f times. TF(0) is 0.
func (z *Vectorizer) TF(f int) float64 {
	if f <= 0 {
		return 0
	}
	if z.scaling == TFLog {
		return 1 + math.Log(float64(f))
	}
	return float64(f)
}

// IDF returns ln((n+1)/(df+1)) + 1, which stays positive even for terms
// present in every document.
func (z *Vectorizer) IDF(df, n int) float64 {
	return math.Log(float64(n+1)/float64(df+1)) + 1
}

// Vectorize weighs every term of tf against the current collection statistics.
func (z *Vectorizer) Vectorize(tf map[string]int, stats Stats) Vector {
	n := stats.TotalDocuments()
	vec := make(Vector, len(tf))
	for term, f := range tf {
		w := z.TF(f)
		if w == 0 {
			continue
		}
		vec[term] = w * z.IDF(stats.DocumentFrequency(term), n)
	}
	return vec
}

// Cosine returns the cosine similarity of two non-negative vectors, or 0 when
// either of them has no weight.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	dot := 0.0
	for term, wa := range a {
		mustBeWeight(term, wa)
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for term, wb := range b {
		mustBeWeight(term, wb)
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return math.Min(1, dot/(na*nb))
}

func mustBeWeight(term string, w float64) {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		panic(fmt.Sprintf("index: malformed vector weight %v for term %q", w, term))
	}
}
