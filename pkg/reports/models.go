package reports

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusAccepted = "accepted"
	StatusAnalyzed = "analyzed"
	StatusFailed   = "failed"
)

// Record tracks one submitted report through intake. Only the masked
// submission payload and processing status are stored; analysis results are
// returned to the caller and never persisted.
type Record struct {
	ID          string            `json:"id" gorm:"primaryKey;column:id"`
	Source      string            `json:"source" gorm:"column:source"`
	LabType     string            `json:"lab_type" gorm:"column:lab_type"`
	Payload     datatypes.JSONMap `json:"payload" gorm:"column:payload"`
	Status      string            `json:"status" gorm:"column:status"`
	Error       string            `json:"error,omitempty" gorm:"column:error"`
	CreatedAt   time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"column:updated_at"`
	LastAttempt *time.Time        `json:"last_attempt,omitempty" gorm:"column:last_attempt"`
}

func (Record) TableName() string {
	return "report_submissions"
}
