package reference

// Category groups catalog entries by the study topic they cover.
type Category string

const (
	CategoryGrammar       Category = "grammar"
	CategoryConjugation   Category = "conjugation"
	CategoryVocabulary    Category = "vocabulary"
	CategoryPronunciation Category = "pronunciation"
	CategoryEssay         Category = "essay"
)

// Entry is one curated study reference. Tags are the lower-cased keywords
// the selector matches against the question/answer corpus.
type Entry struct {
	Title       string
	URL         string
	Description string
	Category    Category
	Tags        []string
}

// catalog is the process-wide read-only reference table. Order matters:
// within a category the first entry is the priority pick, and overall order
// is the tie-break when relevance scores are equal.
var catalog = []Entry{
	{
		Title:       "English Grammar Basics",
		URL:         "https://owl.purdue.edu/owl/general_writing/grammar/",
		Description: "Core grammar rules: sentence structure, subject-verb agreement, and common pitfalls.",
		Category:    CategoryGrammar,
		Tags:        []string{"grammar", "sentence", "structure", "agreement", "tense", "clause"},
	},
	{
		Title:       "Articles: A, An, The",
		URL:         "https://owl.purdue.edu/owl/general_writing/grammar/articles_a_versus_an.html",
		Description: "When to use the definite and indefinite articles, with examples.",
		Category:    CategoryGrammar,
		Tags:        []string{"article", "articles", "the", "an", "determiner", "noun"},
	},
	{
		Title:       "Prepositions of Time and Place",
		URL:         "https://dictionary.cambridge.org/grammar/british-grammar/prepositions",
		Description: "How in, on, at and other prepositions attach to time and place expressions.",
		Category:    CategoryGrammar,
		Tags:        []string{"preposition", "prepositions", "in", "on", "at", "place", "time"},
	},
	{
		Title:       "Verb Conjugation Guide",
		URL:         "https://www.britannica.com/dictionary/eb/qa/verb-conjugation",
		Description: "Regular and irregular verb forms across the simple, perfect, and progressive tenses.",
		Category:    CategoryConjugation,
		Tags:        []string{"verb", "verbs", "conjugation", "conjugate", "tense", "past", "present", "future", "irregular"},
	},
	{
		Title:       "Subject-Verb Agreement",
		URL:         "https://owl.purdue.edu/owl/general_writing/grammar/subject_verb_agreement.html",
		Description: "Matching verb number to the subject, including tricky collective nouns.",
		Category:    CategoryConjugation,
		Tags:        []string{"agreement", "singular", "plural", "subject", "verb", "does", "do"},
	},
	{
		Title:       "Academic Word List",
		URL:         "https://www.oxfordlearnersdictionaries.com/wordlists/",
		Description: "High-frequency academic vocabulary with definitions and usage examples.",
		Category:    CategoryVocabulary,
		Tags:        []string{"vocabulary", "word", "words", "meaning", "definition", "synonym"},
	},
	{
		Title:       "Common Collocations",
		URL:         "https://dictionary.cambridge.org/topics/language/collocation/",
		Description: "Word pairings that sound natural to native speakers: make a decision, heavy rain.",
		Category:    CategoryVocabulary,
		Tags:        []string{"collocation", "phrase", "expression", "usage", "natural", "pair"},
	},
	{
		Title:       "Phrasal Verbs in Context",
		URL:         "https://www.oxfordlearnersdictionaries.com/topic/phrasal-verbs",
		Description: "The most common phrasal verbs grouped by situation, with example sentences.",
		Category:    CategoryVocabulary,
		Tags:        []string{"phrasal", "verb", "idiom", "informal", "context"},
	},
	{
		Title:       "Pronunciation and Word Stress",
		URL:         "https://dictionary.cambridge.org/pronunciation/",
		Description: "IPA transcriptions and audio for stress patterns in multi-syllable words.",
		Category:    CategoryPronunciation,
		Tags:        []string{"pronunciation", "pronounce", "stress", "syllable", "sound", "ipa"},
	},
	{
		Title:       "Minimal Pairs Practice",
		URL:         "https://www.englishclub.com/pronunciation/minimal-pairs.htm",
		Description: "Distinguishing close sounds such as ship/sheep and bat/bet.",
		Category:    CategoryPronunciation,
		Tags:        []string{"minimal", "pairs", "vowel", "consonant", "listening"},
	},
	{
		Title:       "Essay Structure Guide",
		URL:         "https://owl.purdue.edu/owl/general_writing/academic_writing/essay_writing/",
		Description: "Building an essay: thesis statement, body paragraphs, and conclusion.",
		Category:    CategoryEssay,
		Tags:        []string{"essay", "paragraph", "thesis", "introduction", "conclusion", "argument", "structure"},
	},
	{
		Title:       "Linking Words and Transitions",
		URL:         "https://dictionary.cambridge.org/grammar/british-grammar/linking-words",
		Description: "Connectors that carry a reader between ideas: however, therefore, in addition.",
		Category:    CategoryEssay,
		Tags:        []string{"linking", "transition", "however", "therefore", "cohesion", "connector"},
	},
	{
		Title:       "Writing Clear Sentences",
		URL:         "https://owl.purdue.edu/owl/general_writing/mechanics/sentence_clarity.html",
		Description: "Trimming wordiness and keeping one idea per sentence.",
		Category:    CategoryEssay,
		Tags:        []string{"clarity", "concise", "sentence", "writing", "style"},
	},
}

// Catalog returns the full reference table in its fixed order. Callers must
// not mutate the returned slice.
func Catalog() []Entry {
	return catalog
}

func firstOfCategory(c Category) (Entry, bool) {
	for _, e := range catalog {
		if e.Category == c {
			return e, true
		}
	}
	return Entry{}, false
}
