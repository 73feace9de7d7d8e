package dto

// OptionCreateDTO is used within QuestionCreateDTO for authoring.
type OptionCreateDTO struct {
	Text        string `json:"text" binding:"required"`
	IsCorrect   bool   `json:"is_correct"`
	OrderIndex  int    `json:"order_index"`
	IsBlankWord bool   `json:"is_blank_word"`
}

// QuestionCreateDTO is used within ExerciseSetCreateDTO.
type QuestionCreateDTO struct {
	Text             string            `json:"text" binding:"required"`
	Type             string            `json:"type" binding:"required,oneof=multiple_choice true_false essay sentence_arrangement"`
	Points           int               `json:"points" binding:"required,gt=0"`
	OrderIndex       int               `json:"order_index" binding:"required,min=1"`
	CompleteSentence *string           `json:"complete_sentence"`
	Options          []OptionCreateDTO `json:"options" binding:"omitempty,dive"`
}

// ExerciseSetCreateDTO is the admin payload for creating a set with all of
// its questions and options in one call.
type ExerciseSetCreateDTO struct {
	ClassID          uint                `json:"class_id" binding:"required"`
	CreatorID        uint                `json:"creator_id" binding:"required"`
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description,omitempty"`
	ShuffleQuestions bool                `json:"shuffle_questions"`
	MaxAttempts      int                 `json:"max_attempts" binding:"min=0"`
	Questions        []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}
