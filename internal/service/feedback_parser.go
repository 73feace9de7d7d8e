package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FeedbackContent is the structured result every parse produces.
type FeedbackContent struct {
	FeedbackText string `json:"feedback_text"`
	Explanation  string `json:"explanation"`
}

// FallbackContext feeds the terminal synthesis tier. It describes the
// student's own answer, not the model's output.
type FallbackContext struct {
	QuestionText  string
	StudentAnswer string
	IsCorrect     bool
}

// ParseFeedback converts a raw provider response into FeedbackContent.
// Three tiers run in order, first success wins: strict JSON parse, field
// pattern extraction, heuristic synthesis. The last tier cannot fail, so
// this function always returns usable content.
func ParseFeedback(raw string, fc FallbackContext) FeedbackContent {
	if content, ok := parseStructured(raw); ok {
		return content
	}
	if content, ok := extractFields(raw); ok {
		return content
	}
	return synthesize(fc)
}

// parseStructured strips code fences, locates the outermost JSON object and
// unmarshals it. Both fields must be non-empty.
func parseStructured(raw string) (FeedbackContent, bool) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return FeedbackContent{}, false
	}

	var content FeedbackContent
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &content); err != nil {
		return FeedbackContent{}, false
	}
	content.FeedbackText = strings.TrimSpace(content.FeedbackText)
	content.Explanation = strings.TrimSpace(content.Explanation)
	if content.FeedbackText == "" || content.Explanation == "" {
		return FeedbackContent{}, false
	}
	return content, true
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var (
	feedbackFieldRe    = regexp.MustCompile(`"feedback_text"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	explanationFieldRe = regexp.MustCompile(`"explanation"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// extractFields recovers the two fields as literal substrings when the
// surrounding JSON is malformed or buried in prose. Partial recovery counts:
// one found field fills the other with a neutral line.
func extractFields(raw string) (FeedbackContent, bool) {
	var content FeedbackContent
	if m := feedbackFieldRe.FindStringSubmatch(raw); m != nil {
		content.FeedbackText = unescapeJSONString(m[1])
	}
	if m := explanationFieldRe.FindStringSubmatch(raw); m != nil {
		content.Explanation = unescapeJSONString(m[1])
	}
	if content.FeedbackText == "" && content.Explanation == "" {
		return FeedbackContent{}, false
	}
	if content.FeedbackText == "" {
		content.FeedbackText = "Here is some feedback on your answer."
	}
	if content.Explanation == "" {
		content.Explanation = content.FeedbackText
	}
	return content, true
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

var (
	conjugationRe = regexp.MustCompile(`(?i)\b\w+(ed|ing|ies|es)\b`)
	articleRe     = regexp.MustCompile(`(?i)\b(a|an|the)\b`)
	sentenceRe    = regexp.MustCompile(`[.!?]+`)
)

// synthesize builds deterministic feedback from the student's own text when
// the provider output was unusable.
func synthesize(fc FallbackContext) FeedbackContent {
	var content FeedbackContent
	if fc.IsCorrect {
		content.FeedbackText = "Well done! Your answer is correct. Keep up the good work."
	} else {
		content.FeedbackText = "Not quite right this time, but every mistake is a chance to learn."
	}

	answer := strings.TrimSpace(fc.StudentAnswer)
	var bullets []string

	if overlapCount(fc.QuestionText, answer) >= 2 {
		bullets = append(bullets, "- Your answer stays on the topic of the question, which is a good sign of comprehension.")
	} else if answer != "" {
		bullets = append(bullets, "- Your answer shares few words with the question; re-read the prompt to make sure you are addressing it directly.")
	}

	if conjugationRe.MatchString(answer) {
		bullets = append(bullets, "- You used conjugated verb forms; double-check that each tense matches the time frame of the sentence.")
	}
	if articleRe.MatchString(answer) {
		bullets = append(bullets, "- You used articles (a, an, the); review whether each noun needs a definite or indefinite article.")
	}

	sentences := countSentences(answer)
	words := len(strings.Fields(answer))
	switch {
	case sentences > 1:
		bullets = append(bullets, "- You wrote several sentences; check that each one expresses a single complete idea.")
	case words > 15:
		bullets = append(bullets, "- Your answer is one long sentence; consider splitting it for clarity.")
	case words > 0:
		bullets = append(bullets, "- Short answers are fine, but adding a detail or example can show deeper understanding.")
	default:
		bullets = append(bullets, "- No answer text was provided; try writing out your reasoning next time.")
	}

	content.Explanation = strings.Join(bullets, "\n")
	return content
}

func overlapCount(question, answer string) int {
	qWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if len(w) > 3 {
			qWords[w] = true
		}
	}
	count := 0
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(answer)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if qWords[w] && !seen[w] {
			count++
			seen[w] = true
		}
	}
	return count
}

func countSentences(s string) int {
	parts := sentenceRe.Split(s, -1)
	count := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}
