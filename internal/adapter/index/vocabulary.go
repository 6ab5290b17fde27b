package index

// Vocabulary maps each term to the number of live documents containing it.
// Counts are maintained incrementally and never recomputed by scanning.
type Vocabulary struct {
	df map[string]int
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{df: make(map[string]int)}
}

// Add increments the document frequency of every term. Callers pass the
// distinct terms of a single document.
func (v *Vocabulary) Add(terms []string) {
	for _, term := range terms {
		v.df[term]++
	}
}

// Remove decrements the document frequency of every term. The count saturates
// at zero and a term reaching zero is pruned.
func (v *Vocabulary) Remove(terms []string) {
	for _, term := range terms {
		if v.df[term] <= 1 {
			delete(v.df, term)
			continue
		}
		v.df[term]--
	}
}

func (v *Vocabulary) DocumentFrequency(term string) int {
	return v.df[term]
}

// Len returns the number of terms with a non-zero document frequency.
func (v *Vocabulary) Len() int {
	return len(v.df)
}
