// file: models/quiz_attempt.go
package models

import (
	"time"
)

// QuizAttempt tracks how many scoring passes a profile has spent on a quiz
// challenge. It lives in the store, not the client, so clearing a browser or
// switching devices cannot reset the count.
type QuizAttempt struct {
	ProfileID    string    `gorm:"type:char(36);primarykey" json:"profile_id"`
	ChallengeID  uint32    `gorm:"primarykey" json:"challenge_id"`
	AttemptsUsed int       `gorm:"not null;default:0" json:"attempts_used"`
	LastScore    int       `gorm:"not null;default:0" json:"last_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
