// file: controllers/room_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/dto"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

type RoomController struct {
	db *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{db: db}
}

// --- Learner endpoints ---

func (ctl *RoomController) ListRooms(c *gin.Context) {
	var rooms []models.Room
	if err := ctl.db.Preload("Challenges").
		Where("is_active = ?", true).
		Order("id asc").
		Find(&rooms).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar las salas")
		return
	}

	items := make([]dto.RoomItemResp, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, dto.RoomItemResp{
			ID:             room.ID,
			Name:           room.Name,
			Description:    room.Description,
			IsActive:       room.IsActive,
			ChallengeCount: len(room.Challenges),
		})
	}
	utils.Success(c, "success", gin.H{
		"total": len(items),
		"rooms": items,
	})
}

func (ctl *RoomController) GetRoomDetail(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)
	id, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := ctl.db.Preload("Challenges").Preload("Challenges.Category").
		First(&room, id).Error; err != nil {
		utils.Error(c, 4004, "Sala no encontrada")
		return
	}
	if !room.IsActive {
		utils.Error(c, 4003, "Sala no disponible")
		return
	}

	var records []models.SolvedChallenge
	ctl.db.Where("profile_id = ?", profileID).Find(&records)
	solvedSet := make(map[uint32]bool, len(records))
	for _, r := range records {
		solvedSet[r.ChallengeID] = true
	}

	challenges := make([]dto.ChallengeItemResp, 0, len(room.Challenges))
	for _, ch := range room.Challenges {
		challenges = append(challenges, challengeItem(ch, solvedSet[ch.ID]))
	}

	utils.Success(c, "success", dto.RoomDetailResp{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		IsActive:    room.IsActive,
		Challenges:  challenges,
	})
}

// --- Admin endpoints ---

func (ctl *RoomController) AdminListRooms(c *gin.Context) {
	var rooms []models.Room
	if err := ctl.db.Preload("Challenges").Order("id asc").Find(&rooms).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar las salas")
		return
	}

	items := make([]dto.RoomItemResp, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, dto.RoomItemResp{
			ID:             room.ID,
			Name:           room.Name,
			Description:    room.Description,
			IsActive:       room.IsActive,
			ChallengeCount: len(room.Challenges),
		})
	}
	utils.Success(c, "success", gin.H{"total": len(items), "rooms": items})
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	room := models.Room{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   c.GetString(middlewares.CtxProfileID),
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := ctl.db.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ya existe una sala con ese nombre")
			return
		}
		utils.Error(c, 5000, "No se pudo crear la sala")
		return
	}
	utils.Success(c, "Sala creada", gin.H{"id": room.ID})
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := ctl.db.First(&room, id).Error; err != nil {
		utils.Error(c, 4004, "Sala no encontrada")
		return
	}

	var req dto.UpdateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := ctl.db.Save(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ya existe una sala con ese nombre")
			return
		}
		utils.Error(c, 5000, "No se pudo actualizar la sala")
		return
	}
	utils.Success(c, "Sala actualizada", nil)
}

// AssignChallenges replaces the room's challenge set with the given ids.
func (ctl *RoomController) AssignChallenges(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := ctl.db.First(&room, id).Error; err != nil {
		utils.Error(c, 4004, "Sala no encontrada")
		return
	}

	var req dto.AssignRoomChallengesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	var challenges []models.Challenge
	if len(req.ChallengeIDs) > 0 {
		if err := ctl.db.Find(&challenges, req.ChallengeIDs).Error; err != nil {
			utils.Error(c, 5000, "Error al consultar los retos")
			return
		}
		if len(challenges) != len(req.ChallengeIDs) {
			utils.Error(c, 4001, "Alguno de los retos no existe")
			return
		}
	}

	if err := ctl.db.Model(&room).Association("Challenges").Replace(challenges); err != nil {
		utils.Error(c, 5000, "No se pudo actualizar la sala")
		return
	}
	utils.Success(c, "Retos de la sala actualizados", gin.H{
		"room_id":         room.ID,
		"challenge_count": len(challenges),
	})
}

func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := ctl.db.First(&room, id).Error; err != nil {
		// A missing room is already the desired outcome.
		utils.Success(c, "Sala eliminada", nil)
		return
	}

	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&room).Association("Challenges").Clear(); err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		utils.Error(c, 5000, "No se pudo eliminar la sala")
		return
	}
	utils.Success(c, "Sala eliminada", nil)
}
