// file: dto/user.go
package dto

import "strings"

// ========== Request DTOs ==========

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *RegisterReq) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type CheckUsernameReq struct {
	Username string `json:"username"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileReq struct {
	Username string `json:"username" binding:"required"`
}

type RequestPasswordResetReq struct {
	Username string `json:"username" binding:"required"`
}

type ConfirmPasswordResetReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRoleReq struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// ========== Response DTOs ==========

type ProfileSummaryResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Points   int    `json:"points"`
}

type SolvedItemResp struct {
	ChallengeID uint32 `json:"challenge_id"`
	Title       string `json:"title"`
	Points      int    `json:"points"`
	QuizScore   *int   `json:"quiz_score,omitempty"`
	SolvedAt    string `json:"solved_at"`
}

type ProfileDetailResp struct {
	ProfileSummaryResp
	CreatedAt string           `json:"created_at"`
	Solved    []SolvedItemResp `json:"solved"`
}
