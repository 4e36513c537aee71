// file: dto/room.go
package dto

// ========== Request DTOs ==========

type CreateRoomReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateRoomReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type AssignRoomChallengesReq struct {
	ChallengeIDs []uint32 `json:"challenge_ids"`
}

// ========== Response DTOs ==========

type RoomItemResp struct {
	ID             uint32 `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"is_active"`
	ChallengeCount int    `json:"challenge_count"`
}

type RoomDetailResp struct {
	ID          uint32              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	IsActive    bool                `json:"is_active"`
	Challenges  []ChallengeItemResp `json:"challenges"`
}
