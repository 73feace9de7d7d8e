package service

import (
	"fmt"
	"strings"

	"github.com/minhlq/lingolab/internal/model"
)

// Word budgets requested from the model for the two feedback fields.
const (
	feedbackWordBudget    = 40
	explanationWordBudget = 120
)

// BuildFeedbackPrompt assembles the provider instruction for one answered
// question. Pure function: template chosen by question type, no I/O.
// The instruction always requests a two-field JSON object and never asks the
// model to include links; reference materials are attached separately.
func BuildFeedbackPrompt(question *model.Question, studentAnswer, correctAnswer string, isCorrect bool) string {
	var b strings.Builder
	b.WriteString("You are a supportive English teacher giving feedback to a language learner.\n\n")

	switch question.Type {
	case model.QuestionTypeEssay:
		b.WriteString("The student wrote a short essay in response to the prompt below. ")
		b.WriteString("Evaluate it on four axes:\n")
		b.WriteString("- Grammar: tense consistency, sentence construction, agreement errors.\n")
		b.WriteString("- Articles: correct use of a, an, and the.\n")
		b.WriteString("- Vocabulary: word choice, variety, and natural collocations.\n")
		b.WriteString("- Structure: clear opening, supporting ideas, and a closing thought.\n\n")
		b.WriteString("Essay prompt:\n---\n")
		b.WriteString(question.Text)
		b.WriteString("\n---\n\nStudent's essay:\n---\n")
		b.WriteString(studentAnswer)
		b.WriteString("\n---\n\n")

	case model.QuestionTypeSentenceArrangement:
		b.WriteString("The student filled blanks in a sentence by choosing word tiles. ")
		if isCorrect {
			b.WriteString("Their arrangement was correct.\n\n")
		} else {
			b.WriteString("Their arrangement was incorrect.\n\n")
		}
		b.WriteString("Exercise instruction:\n")
		b.WriteString(question.Text)
		b.WriteString("\n\nStudent's sentence: ")
		b.WriteString(studentAnswer)
		b.WriteString("\nCorrect sentence: ")
		b.WriteString(correctAnswer)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Your explanation MUST contain the complete correct sentence exactly as given, highlighted in bold like **%s**, and explain why the words fit in that order.\n\n", correctAnswer)

	default:
		b.WriteString("The student answered a ")
		if question.Type == model.QuestionTypeTrueFalse {
			b.WriteString("true/false")
		} else {
			b.WriteString("multiple-choice")
		}
		b.WriteString(" question. Explain the single concept the question tests")
		if isCorrect {
			b.WriteString(" and reinforce why the student's answer is right.\n\n")
		} else {
			b.WriteString(", why the correct answer is right, and where the student's choice goes wrong.\n\n")
		}
		b.WriteString("Question: ")
		b.WriteString(question.Text)
		b.WriteString("\nStudent's answer: ")
		b.WriteString(studentAnswer)
		b.WriteString("\nCorrect answer: ")
		b.WriteString(correctAnswer)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, `Respond with a single JSON object and nothing else:
{
  "feedback_text": "encouraging summary, at most %d words",
  "explanation": "detailed explanation, at most %d words"
}
Do not include URLs or hyperlinks anywhere in the response.
`, feedbackWordBudget, explanationWordBudget)

	return b.String()
}
