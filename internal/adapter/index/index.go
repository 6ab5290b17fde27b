package index

import (
	"sort"

	"aide/internal/adapter/analyzer"
)

// Document is one indexed identifier.
type Document struct {
	Name string
	// Terms holds the distinct terms of Name, sorted.
	Terms []string
	TF    map[string]int
	// Vector is weighted against the document frequencies in effect when the
	// document was last indexed or rebuilt. Later inserts and removes do not
	// refresh it.
	Vector Vector
}

// Index is the incremental TF-IDF index of one entity kind: a vocabulary, the
// documents and their cached vectors. It is not safe for concurrent use.
type Index struct {
	tokenizer  *analyzer.Tokenizer
	vectorizer *Vectorizer
	vocab      *Vocabulary
	docs       map[string]*Document
	byNorm     map[string][]string
	generation uint64
}

// New creates an empty index.
func New(tokenizer *analyzer.Tokenizer, vectorizer *Vectorizer) *Index {
	return &Index{
		tokenizer:  tokenizer,
		vectorizer: vectorizer,
		vocab:      NewVocabulary(),
		docs:       make(map[string]*Document),
		byNorm:     make(map[string][]string),
	}
}

// Build bulk-loads names into a new index. Vectors are recomputed once after
// the load so every document is weighted against the final vocabulary.
func Build(tokenizer *analyzer.Tokenizer, vectorizer *Vectorizer, names []string) *Index {
	idx := New(tokenizer, vectorizer)
	for _, name := range names {
		idx.Insert(name)
	}
	idx.Rebuild()
	return idx
}

// Insert indexes name and returns its document id. The cost depends only on
// the number of terms in name; no other document is touched. Inserting a
// name that is already indexed changes nothing and reports added=false.
func (idx *Index) Insert(name string) (id string, added bool) {
	if _, ok := idx.docs[name]; ok {
		return name, false
	}

	tf := idx.tokenizer.TermFrequencies(name)
	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	idx.vocab.Add(terms)
	doc := &Document{Name: name, Terms: terms, TF: tf}
	idx.docs[name] = doc
	doc.Vector = idx.vectorizer.Vectorize(tf, idx)

	norm := analyzer.Normalize(name)
	names := append(idx.byNorm[norm], name)
	sort.Strings(names)
	idx.byNorm[norm] = names

	idx.generation++
	return name, true
}

// Remove drops name from the index. It reports false when name is not indexed.
func (idx *Index) Remove(name string) bool {
	doc, ok := idx.docs[name]
	if !ok {
		return false
	}

	idx.vocab.Remove(doc.Terms)
	delete(idx.docs, name)

	norm := analyzer.Normalize(name)
	names := idx.byNorm[norm]
	for i, n := range names {
		if n == name {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}
	if len(names) == 0 {
		delete(idx.byNorm, norm)
	} else {
		idx.byNorm[norm] = names
	}

	idx.generation++
	return true
}

// Rebuild recomputes every cached vector from the current document
// frequencies. It is never triggered by Insert or Remove.
func (idx *Index) Rebuild() {
	for _, doc := range idx.docs {
		doc.Vector = idx.vectorizer.Vectorize(doc.TF, idx)
	}
	idx.generation++
}

// Lookup finds the indexed name equal to raw, first verbatim and then under
// case-insensitive normalization. When several names share a normalized form
// the lexicographically smallest wins.
func (idx *Index) Lookup(raw string) (string, bool) {
	if _, ok := idx.docs[raw]; ok {
		return raw, true
	}
	if names := idx.byNorm[analyzer.Normalize(raw)]; len(names) > 0 {
		return names[0], true
	}
	return "", false
}

// Each calls fn for every indexed document in unspecified order.
func (idx *Index) Each(fn func(doc *Document)) {
	for _, doc := range idx.docs {
		fn(doc)
	}
}

// QueryVector tokenizes text and weighs it against the current vocabulary.
func (idx *Index) QueryVector(text string) Vector {
	return idx.vectorizer.Vectorize(idx.tokenizer.TermFrequencies(text), idx)
}

func (idx *Index) DocumentFrequency(term string) int {
	return idx.vocab.DocumentFrequency(term)
}

func (idx *Index) TotalDocuments() int {
	return len(idx.docs)
}

func (idx *Index) Vocabulary() *Vocabulary {
	return idx.vocab
}

// Generation changes on every Insert, Remove and Rebuild.
func (idx *Index) Generation() uint64 {
	return idx.generation
}
