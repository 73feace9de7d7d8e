package reference

import (
	"sort"
	"strings"
)

// SelectCount is the number of references attached to every feedback record.
const SelectCount = 3

var (
	grammarKeywords = []string{
		"grammar", "tense", "verb", "conjugate", "conjugation", "article",
		"preposition", "plural", "singular", "sentence", "clause",
	}
	vocabularyKeywords = []string{
		"vocabulary", "word", "meaning", "synonym", "definition", "phrase",
		"collocation", "idiom",
	}
	essayKeywords = []string{
		"essay", "paragraph", "opinion", "argument", "write", "writing",
		"describe", "explain",
	}
)

// Select ranks the catalog against the question/answer context and returns
// exactly SelectCount entries. The result is deterministic: priority slots
// come from keyword-bucket matches in fixed category order, remaining slots
// from tag-hit scores with stable catalog order as the tie-break.
func Select(questionText, correctAnswer, studentAnswer, questionType string) []Entry {
	corpus := strings.ToLower(questionText + " " + correctAnswer + " " + studentAnswer)

	var picked []Entry
	seen := make(map[string]bool)
	add := func(e Entry) {
		if len(picked) < SelectCount && !seen[e.Title] {
			picked = append(picked, e)
			seen[e.Title] = true
		}
	}

	// Priority slots, category order grammar -> conjugation -> vocabulary -> essay.
	if containsAny(corpus, grammarKeywords) {
		if e, ok := firstOfCategory(CategoryGrammar); ok {
			add(e)
		}
		if e, ok := firstOfCategory(CategoryConjugation); ok {
			add(e)
		}
	}
	if containsAny(corpus, vocabularyKeywords) {
		if e, ok := firstOfCategory(CategoryVocabulary); ok {
			add(e)
		}
	}
	if questionType == "essay" && containsAny(corpus, essayKeywords) {
		if e, ok := firstOfCategory(CategoryEssay); ok {
			add(e)
		}
	}

	// Score every entry by how many of its tags appear in the corpus.
	type scored struct {
		entry Entry
		score int
	}
	ranked := make([]scored, 0, len(catalog))
	for _, e := range catalog {
		s := 0
		for _, tag := range e.Tags {
			if strings.Contains(corpus, tag) {
				s++
			}
		}
		if s > 0 {
			ranked = append(ranked, scored{entry: e, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for _, r := range ranked {
		add(r.entry)
	}

	if len(picked) == 0 {
		return Defaults(questionType)
	}

	// Pad from the fixed defaults when keyword and tag matches together
	// produced fewer than three entries.
	for _, e := range Defaults(questionType) {
		add(e)
	}
	for _, e := range catalog {
		add(e)
	}
	return picked
}

// Defaults is the fixed fallback triple used when nothing in the corpus
// matched; it depends only on whether the question is an essay.
func Defaults(questionType string) []Entry {
	var categories []Category
	if questionType == "essay" {
		categories = []Category{CategoryEssay, CategoryGrammar, CategoryVocabulary}
	} else {
		categories = []Category{CategoryGrammar, CategoryVocabulary, CategoryPronunciation}
	}
	out := make([]Entry, 0, SelectCount)
	for _, c := range categories {
		if e, ok := firstOfCategory(c); ok {
			out = append(out, e)
		}
	}
	return out
}

func containsAny(corpus string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(corpus, k) {
			return true
		}
	}
	return false
}
