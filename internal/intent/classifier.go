// Package intent maps free-text chat messages to a coarse purpose label
// and extracts order identifiers. It is the fallback path of the dispatcher,
// consulted only when no explicit menu rule matches.
package intent

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Label is the coarse purpose inferred from free text.
type Label string

const (
	LabelTrack  Label = "track"
	LabelCancel Label = "cancel"
	LabelAgent  Label = "agent"
)

// Example is a labeled training sentence.
type Example struct {
	Text  string
	Label Label
}

// DefaultCorpus returns the built-in training corpus. Two sentences per
// label keeps the class priors flat so no label wins ties by frequency.
func DefaultCorpus() []Example {
	return []Example{
		{Text: "track my order", Label: LabelTrack},
		{Text: "where is my order", Label: LabelTrack},
		{Text: "cancel my order", Label: LabelCancel},
		{Text: "i want to cancel", Label: LabelCancel},
		{Text: "talk to agent", Label: LabelAgent},
		{Text: "connect me to support", Label: LabelAgent},
	}
}

// Classifier is a TF-IDF weighted multinomial naive Bayes text classifier.
// It is trained once at construction and immutable afterwards, so a single
// instance is safe to share across concurrent callers.
type Classifier struct {
	labels   []Label
	vocab    map[string]int // term -> column index
	idf      []float64      // per term
	logPrior []float64      // per label
	logTheta [][]float64    // [label][term] smoothed log feature probability
}

// NewClassifier trains a classifier on the given corpus. Every label that
// appears in the corpus becomes a possible Classify result; there is no
// reject option.
func NewClassifier(corpus []Example) (*Classifier, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("intent: classifier: corpus is empty")
	}

	c := &Classifier{vocab: map[string]int{}}

	// Tokenize every document and build the vocabulary in first-seen order.
	docs := make([][]string, len(corpus))
	labelIdx := map[Label]int{}
	docLabel := make([]int, len(corpus))
	for i, ex := range corpus {
		toks := tokenize(ex.Text)
		if len(toks) == 0 {
			return nil, fmt.Errorf("intent: classifier: example %q has no tokens", ex.Text)
		}
		docs[i] = toks
		for _, tok := range toks {
			if _, ok := c.vocab[tok]; !ok {
				c.vocab[tok] = len(c.vocab)
			}
		}
		li, ok := labelIdx[ex.Label]
		if !ok {
			li = len(c.labels)
			labelIdx[ex.Label] = li
			c.labels = append(c.labels, ex.Label)
		}
		docLabel[i] = li
	}

	// Smoothed inverse document frequency: ln((1+n)/(1+df)) + 1.
	df := make([]int, len(c.vocab))
	for _, toks := range docs {
		seen := map[int]bool{}
		for _, tok := range toks {
			seen[c.vocab[tok]] = true
		}
		for col := range seen {
			df[col]++
		}
	}
	n := float64(len(docs))
	c.idf = make([]float64, len(c.vocab))
	for col, d := range df {
		c.idf[col] = math.Log((1+n)/(1+float64(d))) + 1
	}

	// Accumulate per-label TF-IDF mass, then apply Laplace smoothing.
	counts := make([][]float64, len(c.labels))
	totals := make([]float64, len(c.labels))
	for li := range counts {
		counts[li] = make([]float64, len(c.vocab))
	}
	perLabel := make([]int, len(c.labels))
	for i, toks := range docs {
		vec := c.vectorize(toks)
		li := docLabel[i]
		perLabel[li]++
		for col, w := range vec {
			counts[li][col] += w
			totals[li] += w
		}
	}

	c.logPrior = make([]float64, len(c.labels))
	c.logTheta = make([][]float64, len(c.labels))
	vocabSize := float64(len(c.vocab))
	for li := range c.labels {
		c.logPrior[li] = math.Log(float64(perLabel[li]) / n)
		c.logTheta[li] = make([]float64, len(c.vocab))
		denom := totals[li] + vocabSize
		for col := range c.logTheta[li] {
			c.logTheta[li][col] = math.Log((counts[li][col] + 1) / denom)
		}
	}

	return c, nil
}

// Labels returns the trained label set in training order.
func (c *Classifier) Labels() []Label {
	out := make([]Label, len(c.labels))
	copy(out, c.labels)
	return out
}

// Classify returns the highest-scoring label for text. Unknown terms are
// ignored; text with no known terms scores on priors alone. A label is
// always returned — the caller's state machine bounds the damage of a
// forced misclassification.
func (c *Classifier) Classify(text string) Label {
	vec := c.vectorize(tokenize(text))

	best := 0
	bestScore := math.Inf(-1)
	for li := range c.labels {
		score := c.logPrior[li]
		for col, w := range vec {
			score += w * c.logTheta[li][col]
		}
		if score > bestScore {
			bestScore = score
			best = li
		}
	}
	return c.labels[best]
}

// vectorize builds an L2-normalized TF-IDF vector (sparse, keyed by vocab
// column) over the known vocabulary. Out-of-vocabulary tokens are dropped.
func (c *Classifier) vectorize(tokens []string) map[int]float64 {
	vec := map[int]float64{}
	for _, tok := range tokens {
		if col, ok := c.vocab[tok]; ok {
			vec[col]++
		}
	}
	var sumSq float64
	for col := range vec {
		vec[col] *= c.idf[col]
		sumSq += vec[col] * vec[col]
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// tokenize lower-cases text and splits it into alphanumeric runs, dropping
// single-character tokens ("i", "a") as noise.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	toks := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			toks = append(toks, f)
		}
	}
	return toks
}
