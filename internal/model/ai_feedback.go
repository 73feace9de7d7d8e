package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	FeedbackTypeCorrect   = "correct"
	FeedbackTypeIncorrect = "incorrect"
)

// ReferenceMaterial is a snapshot of a curated study reference at the time
// feedback was generated, not a live link to the catalog.
type ReferenceMaterial struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ReferenceList stores the reference snapshots as a JSONB column.
type ReferenceList []ReferenceMaterial

func (r ReferenceList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *ReferenceList) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type %T for ReferenceList", value)
	}
}

type AIFeedback struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	StudentAnswerID  uint           `json:"student_answer_id" gorm:"not null;uniqueIndex"`
	QuestionID       uint           `json:"question_id" gorm:"not null;index"`
	AttemptID        uint           `json:"attempt_id" gorm:"not null;index"`
	FeedbackType     string         `json:"feedback_type" gorm:"not null"` // correct, incorrect
	FeedbackText     string         `json:"feedback_text" gorm:"type:text;not null"`
	Explanation      string         `json:"explanation" gorm:"type:text"`
	References       ReferenceList  `json:"reference_materials" gorm:"column:reference_materials;type:jsonb"`
	AIModel          string         `json:"ai_model"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	Success          bool           `json:"success" gorm:"default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
