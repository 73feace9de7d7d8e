package reference

import (
	"reflect"
	"strings"
	"testing"
)

func TestSelectAlwaysReturnsThree(t *testing.T) {
	tests := []struct {
		name          string
		questionText  string
		correctAnswer string
		studentAnswer string
		questionType  string
	}{
		{
			name:          "grammar question",
			questionText:  "Choose the correct tense of the verb",
			correctAnswer: "went",
			studentAnswer: "goed",
			questionType:  "multiple_choice",
		},
		{
			name:          "vocabulary question",
			questionText:  "Which word has the same meaning as happy?",
			correctAnswer: "joyful",
			studentAnswer: "sad",
			questionType:  "multiple_choice",
		},
		{
			name:          "essay prompt",
			questionText:  "Write an essay about your last holiday",
			correctAnswer: "",
			studentAnswer: "Last summer I visited my grandmother in the countryside.",
			questionType:  "essay",
		},
		{
			name:          "no matches at all",
			questionText:  "zzz",
			correctAnswer: "qqq",
			studentAnswer: "xxx",
			questionType:  "true_false",
		},
		{
			name:          "empty everything",
			questionText:  "",
			correctAnswer: "",
			studentAnswer: "",
			questionType:  "multiple_choice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.questionText, tt.correctAnswer, tt.studentAnswer, tt.questionType)
			if len(got) != SelectCount {
				t.Fatalf("Select() returned %d entries, want %d", len(got), SelectCount)
			}
			seen := make(map[string]bool)
			for _, e := range got {
				if e.Title == "" || e.URL == "" {
					t.Errorf("Select() returned incomplete entry: %+v", e)
				}
				if seen[e.Title] {
					t.Errorf("Select() returned duplicate entry %q", e.Title)
				}
				seen[e.Title] = true
			}
		})
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	inputs := [][4]string{
		{"Choose the correct tense of the verb", "went", "goed", "multiple_choice"},
		{"Write an essay about your hometown", "", "My hometown is small but beautiful.", "essay"},
		{"Pick the word closest in meaning to rapid", "quick", "slow", "multiple_choice"},
		{"", "", "", "true_false"},
	}
	for _, in := range inputs {
		first := Select(in[0], in[1], in[2], in[3])
		for i := 0; i < 5; i++ {
			again := Select(in[0], in[1], in[2], in[3])
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("Select(%q, ...) not deterministic: run %d differs\nfirst: %v\nagain: %v", in[0], i, titles(first), titles(again))
			}
		}
	}
}

func TestSelectGrammarPriority(t *testing.T) {
	got := Select("Choose the correct tense of the verb", "went", "goed", "multiple_choice")
	if got[0].Category != CategoryGrammar {
		t.Errorf("first entry category = %q, want %q", got[0].Category, CategoryGrammar)
	}
	if got[1].Category != CategoryConjugation {
		t.Errorf("second entry category = %q, want %q", got[1].Category, CategoryConjugation)
	}
}

func TestSelectEmptyCorpusUsesDefaults(t *testing.T) {
	got := Select("", "", "", "multiple_choice")
	want := Defaults("multiple_choice")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select with empty corpus = %v, want defaults %v", titles(got), titles(want))
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		questionType   string
		wantCategories []Category
	}{
		{"essay", []Category{CategoryEssay, CategoryGrammar, CategoryVocabulary}},
		{"multiple_choice", []Category{CategoryGrammar, CategoryVocabulary, CategoryPronunciation}},
		{"true_false", []Category{CategoryGrammar, CategoryVocabulary, CategoryPronunciation}},
		{"sentence_arrangement", []Category{CategoryGrammar, CategoryVocabulary, CategoryPronunciation}},
	}
	for _, tt := range tests {
		t.Run(tt.questionType, func(t *testing.T) {
			got := Defaults(tt.questionType)
			if len(got) != SelectCount {
				t.Fatalf("Defaults(%q) returned %d entries, want %d", tt.questionType, len(got), SelectCount)
			}
			for i, e := range got {
				if e.Category != tt.wantCategories[i] {
					t.Errorf("Defaults(%q)[%d] category = %q, want %q", tt.questionType, i, e.Category, tt.wantCategories[i])
				}
			}
		})
	}
}

func TestCatalogTagsAreLowercase(t *testing.T) {
	for _, e := range Catalog() {
		for _, tag := range e.Tags {
			if tag != strings.ToLower(tag) {
				t.Errorf("entry %q has non-lowercase tag %q", e.Title, tag)
			}
		}
	}
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}
