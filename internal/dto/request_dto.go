package dto

// CreateAttemptRequest starts or resumes an attempt on an exercise set.
// The set id comes from the URL path.
type CreateAttemptRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// RecordAnswerRequest submits one answer against an in-progress attempt.
// Exactly one of SelectedOptionID and TextAnswer carries the response.
type RecordAnswerRequest struct {
	QuestionID       uint   `json:"question_id" binding:"required"`
	SelectedOptionID *uint  `json:"selected_option_id"`
	TextAnswer       string `json:"text_answer"`
	IsCorrect        *bool  `json:"is_correct" binding:"required"`
}

// GenerateFeedbackRequest asks for AI feedback on a saved answer.
type GenerateFeedbackRequest struct {
	StudentAnswerID uint   `json:"student_answer_id" binding:"required"`
	QuestionID      uint   `json:"question_id"`
	AttemptID       uint   `json:"attempt_id"`
	SelectedOption  *uint  `json:"selected_option_id"`
	TextAnswer      string `json:"text_answer"`
	IsCorrect       bool   `json:"is_correct"`
}
