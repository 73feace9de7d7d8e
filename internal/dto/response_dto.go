package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// AttemptResponse answers a create-or-resume call. Resumed reports whether an
// existing in-progress attempt was returned instead of a new one.
type AttemptResponse struct {
	AttemptID     uint      `json:"attempt_id"`
	AttemptNumber int       `json:"attempt_number"`
	Status        string    `json:"status"`
	StartedAt     time.Time `json:"started_at"`
	Resumed       bool      `json:"resumed"`
}

type RecordAnswerResponse struct {
	AnswerID     uint `json:"answer_id"`
	IsCorrect    bool `json:"is_correct"`
	PointsEarned int  `json:"points_earned"`
}

type CompleteAttemptResponse struct {
	AttemptID        uint    `json:"attempt_id"`
	TotalScore       int     `json:"total_score"`
	MaxPossibleScore int     `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`
	GradeBand        string  `json:"grade_band"`
	TimeSpentMinutes int     `json:"time_spent_minutes"`
}

// ReferenceMaterialDTO is a snapshot of one curated study reference.
type ReferenceMaterialDTO struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// FeedbackData is the payload of a feedback envelope; always populated, even
// when generation fell back.
type FeedbackData struct {
	FeedbackType       string                 `json:"feedback_type"`
	FeedbackText       string                 `json:"feedback_text"`
	Explanation        string                 `json:"explanation"`
	ReferenceMaterials []ReferenceMaterialDTO `json:"reference_materials"`
	ProcessingTimeMs   int64                  `json:"processing_time_ms"`
	AIModel            string                 `json:"ai_model"`
}

// FeedbackEnvelope is always returned with HTTP 200 once the request is
// structurally valid; Success=false signals internal fallback.
type FeedbackEnvelope struct {
	Success bool          `json:"success"`
	Data    *FeedbackData `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// --- Exercise browsing DTOs ---

type OptionDTO struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	OrderIndex  int    `json:"order_index"`
	IsBlankWord bool   `json:"is_blank_word"`
}

type QuestionDTO struct {
	ID         uint        `json:"id"`
	Text       string      `json:"text"`
	Type       string      `json:"type"`
	Points     int         `json:"points"`
	OrderIndex int         `json:"order_index"`
	Options    []OptionDTO `json:"options,omitempty"`
}

type ExerciseSetSummaryDTO struct {
	ID            uint      `json:"id"`
	ClassID       uint      `json:"class_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	MaxAttempts   int       `json:"max_attempts"`
	CreatedAt     time.Time `json:"created_at"`
}

type ExerciseSetDetailDTO struct {
	ID               uint          `json:"id"`
	ClassID          uint          `json:"class_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	ShuffleQuestions bool          `json:"shuffle_questions"`
	MaxAttempts      int           `json:"max_attempts"`
	Questions        []QuestionDTO `json:"questions,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// --- Attempt detail / history DTOs ---

type FeedbackDTO struct {
	FeedbackType       string                 `json:"feedback_type"`
	FeedbackText       string                 `json:"feedback_text"`
	Explanation        string                 `json:"explanation"`
	ReferenceMaterials []ReferenceMaterialDTO `json:"reference_materials"`
	AIModel            string                 `json:"ai_model"`
	ProcessingTimeMs   int64                  `json:"processing_time_ms"`
	Success            bool                   `json:"success"`
}

type AnswerDTO struct {
	ID               uint         `json:"id"`
	QuestionID       uint         `json:"question_id"`
	SelectedOptionID *uint        `json:"selected_option_id,omitempty"`
	TextAnswer       string       `json:"text_answer,omitempty"`
	IsCorrect        bool         `json:"is_correct"`
	PointsEarned     int          `json:"points_earned"`
	AnsweredAt       time.Time    `json:"answered_at"`
	Feedback         *FeedbackDTO `json:"feedback,omitempty"`
}

type AttemptDetailDTO struct {
	ID               uint        `json:"id"`
	ExerciseSetID    uint        `json:"exercise_set_id"`
	StudentID        uint        `json:"student_id"`
	AttemptNumber    int         `json:"attempt_number"`
	Status           string      `json:"status"`
	StartedAt        time.Time   `json:"started_at"`
	SubmittedAt      *time.Time  `json:"submitted_at,omitempty"`
	TotalScore       int         `json:"total_score"`
	MaxPossibleScore int         `json:"max_possible_score"`
	Percentage       float64     `json:"percentage"`
	GradeBand        string      `json:"grade_band,omitempty"`
	TimeSpentMinutes int         `json:"time_spent_minutes"`
	Answers          []AnswerDTO `json:"answers,omitempty"`
}

type AttemptSummaryDTO struct {
	ID            uint       `json:"id"`
	ExerciseSetID uint       `json:"exercise_set_id"`
	AttemptNumber int        `json:"attempt_number"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	TotalScore    int        `json:"total_score"`
	Percentage    float64    `json:"percentage"`
}
