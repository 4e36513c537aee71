// file: models/solved_challenge.go
package models

import (
	"time"
)

// SolvedChallenge records that a profile completed a challenge. At most one
// row may ever exist per (profile, challenge) pair; the composite primary
// key is what enforces that, not application-level locking. The row is
// written exactly once and never updated.
//
// QuizScore is 0-100 for quiz challenges and nil for flag challenges, where
// a match is by definition fully correct.
type SolvedChallenge struct {
	ProfileID   string    `gorm:"type:char(36);primarykey" json:"profile_id"`
	ChallengeID uint32    `gorm:"primarykey" json:"challenge_id"`
	SolvedAt    time.Time `json:"solved_at"`
	QuizScore   *int      `json:"quiz_score,omitempty"`
}

func (SolvedChallenge) TableName() string {
	return "solved_challenges"
}
