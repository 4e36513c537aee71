// file: dto/challenge.go
package dto

import "strings"

// ========== Request DTOs ==========

type QuizOptionReq struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestionReq struct {
	ID      string          `json:"id"`
	Prompt  string          `json:"prompt"`
	Arity   string          `json:"arity"` // single / multiple
	Options []QuizOptionReq `json:"options"`
}

type CreateChallengeReq struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	CategoryID    *uint32           `json:"category_id"`
	Points        int               `json:"points"`
	Difficulty    string            `json:"difficulty"` // easy / medium / hard
	ChallengeType string            `json:"challenge_type"` // flag / quiz
	Flag          string            `json:"flag"`
	Questions     []QuizQuestionReq `json:"questions"`
}

func (r *CreateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ChallengeType = strings.ToLower(strings.TrimSpace(r.ChallengeType))
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.Difficulty == "" {
		r.Difficulty = "undefined"
	}
}

type UpdateChallengeReq struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	CategoryID  *uint32            `json:"category_id"`
	Points      *int               `json:"points"`
	Difficulty  *string            `json:"difficulty"`
	Flag        *string            `json:"flag"`
	Questions   *[]QuizQuestionReq `json:"questions"`
}

// ========== Response DTOs ==========

type ChallengeItemResp struct {
	ID            uint32 `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
	ChallengeType string `json:"challenge_type"`
	Solved        bool   `json:"solved"`
}

// QuizOptionResp deliberately omits the correctness flag, learners never see it.
type QuizOptionResp struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuizQuestionResp struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Arity   string           `json:"arity"`
	Options []QuizOptionResp `json:"options"`
}

type ChallengeDetailResp struct {
	ID            uint32             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Difficulty    string             `json:"difficulty"`
	Points        int                `json:"points"`
	ChallengeType string             `json:"challenge_type"`
	FileURL       string             `json:"file_url,omitempty"`
	Questions     []QuizQuestionResp `json:"questions,omitempty"`
	Solved        bool               `json:"solved"`
	QuizScore     *int               `json:"quiz_score,omitempty"`
	AttemptsUsed  int                `json:"attempts_used,omitempty"`
}

// ====== Admin response DTOs ======

type AdminChallengeItemResp struct {
	ID            uint32 `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
	ChallengeType string `json:"challenge_type"`
	SolvedCount   int64  `json:"solved_count"`
	UpdatedAt     string `json:"updated_at"`
}

type AdminChallengeDetailResp struct {
	ID            uint32            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	CategoryID    *uint32           `json:"category_id,omitempty"`
	Category      string            `json:"category"`
	Difficulty    string            `json:"difficulty"`
	Points        int               `json:"points"`
	ChallengeType string            `json:"challenge_type"`
	Flag          string            `json:"flag,omitempty"`
	Questions     []QuizQuestionReq `json:"questions,omitempty"`
	FileURL       string            `json:"file_url,omitempty"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}
