// file: controllers/challenge_controller.go
package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/dto"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

type ChallengeController struct {
	db *gorm.DB
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{db: db}
}

// --- Learner endpoints ---

// ListChallenges returns the catalog with a solved marker per entry.
func (ctl *ChallengeController) ListChallenges(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)

	db := ctl.db.Model(&models.Challenge{}).Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := strconv.Atoi(categoryID); err == nil && id > 0 {
			db = db.Where("category_id = ?", id)
		}
	}
	if diff := strings.TrimSpace(c.Query("difficulty")); diff != "" {
		db = db.Where("difficulty = ?", diff)
	}

	var challenges []models.Challenge
	if err := db.Order("id asc").Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar los retos")
		return
	}

	solvedSet, err := ctl.solvedSet(profileID)
	if err != nil {
		utils.Error(c, 5000, "Error al consultar los retos")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, challengeItem(ch, solvedSet[ch.ID]))
	}
	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail returns one challenge. Quiz questions are sanitized so
// the correctness flags never leave the server; the flag secret never
// appears in any learner response.
func (ctl *ChallengeController) GetChallengeDetail(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := ctl.db.Preload("Category").First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}

	resp := dto.ChallengeDetailResp{
		ID:            challenge.ID,
		Title:         challenge.Title,
		Description:   challenge.Description,
		Category:      categoryName(challenge.Category),
		Difficulty:    string(challenge.Difficulty),
		Points:        challenge.Points,
		ChallengeType: string(challenge.Type),
		FileURL:       challenge.FileURL,
	}

	if challenge.Type == models.ChallengeTypeQuiz {
		resp.Questions = sanitizeQuestions(challenge.Questions)

		var attempt models.QuizAttempt
		if err := ctl.db.Where("profile_id = ? AND challenge_id = ?", profileID, challenge.ID).
			First(&attempt).Error; err == nil {
			resp.AttemptsUsed = attempt.AttemptsUsed
		}
	}

	var record models.SolvedChallenge
	if err := ctl.db.Where("profile_id = ? AND challenge_id = ?", profileID, challenge.ID).
		First(&record).Error; err == nil {
		resp.Solved = true
		resp.QuizScore = record.QuizScore
	}

	utils.Success(c, "success", resp)
}

// DownloadAttachment redirects to the public URL of the challenge file.
func (ctl *ChallengeController) DownloadAttachment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := ctl.db.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}
	if challenge.FileURL == "" {
		utils.Error(c, 4004, "Este reto no tiene archivo adjunto")
		return
	}
	c.Redirect(302, challenge.FileURL)
}

// --- Admin endpoints ---

func (ctl *ChallengeController) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.Description == "" || req.Points <= 0 {
		utils.Error(c, 1001, "Faltan campos obligatorios")
		return
	}
	if !validDifficulty(req.Difficulty) {
		utils.Error(c, 1001, "Dificultad inválida (easy/medium/hard)")
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := ctl.db.First(&category, *req.CategoryID).Error; err != nil {
			utils.Error(c, 4001, "La categoría no existe")
			return
		}
	}

	challenge := models.Challenge{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Points:      req.Points,
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Type:        models.ChallengeType(req.ChallengeType),
		Flag:        req.Flag,
		Questions:   mapQuestions(req.Questions),
		CreatedBy:   c.GetString(middlewares.CtxProfileID),
	}
	if err := challenge.ValidateScheme(); err != nil {
		utils.Error(c, 1002, err.Error())
		return
	}

	if err := ctl.db.Create(&challenge).Error; err != nil {
		utils.Error(c, 5000, "No se pudo crear el reto: "+err.Error())
		return
	}
	utils.Success(c, "Reto creado correctamente", gin.H{"id": challenge.ID})
}

func (ctl *ChallengeController) AdminListChallenges(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	db := ctl.db.Model(&models.Challenge{}).Preload("Category")
	if kw := strings.TrimSpace(c.Query("keyword")); kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar los retos")
		return
	}

	var list []models.Challenge
	if err := db.Order("updated_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar los retos")
		return
	}

	items := make([]dto.AdminChallengeItemResp, 0, len(list))
	for _, ch := range list {
		var solvedCount int64
		ctl.db.Model(&models.SolvedChallenge{}).Where("challenge_id = ?", ch.ID).Count(&solvedCount)

		items = append(items, dto.AdminChallengeItemResp{
			ID:            ch.ID,
			Title:         ch.Title,
			Category:      categoryName(ch.Category),
			Difficulty:    string(ch.Difficulty),
			Points:        ch.Points,
			ChallengeType: string(ch.Type),
			SolvedCount:   solvedCount,
			UpdatedAt:     ch.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"challenges": items,
	})
}

func (ctl *ChallengeController) AdminGetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := ctl.db.Preload("Category").First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}

	questions := make([]dto.QuizQuestionReq, 0, len(ch.Questions))
	for _, q := range ch.Questions {
		options := make([]dto.QuizOptionReq, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.QuizOptionReq{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, dto.QuizQuestionReq{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Arity:   string(q.Arity),
			Options: options,
		})
	}

	utils.Success(c, "success", dto.AdminChallengeDetailResp{
		ID:            ch.ID,
		Title:         ch.Title,
		Description:   ch.Description,
		CategoryID:    ch.CategoryID,
		Category:      categoryName(ch.Category),
		Difficulty:    string(ch.Difficulty),
		Points:        ch.Points,
		ChallengeType: string(ch.Type),
		Flag:          ch.Flag,
		Questions:     questions,
		FileURL:       ch.FileURL,
		CreatedAt:     ch.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     ch.UpdatedAt.Format("2006-01-02 15:04:05"),
	})
}

func (ctl *ChallengeController) UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := ctl.db.First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	if req.Title != nil {
		ch.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		ch.Description = *req.Description
	}
	if req.CategoryID != nil {
		ch.CategoryID = req.CategoryID
	}
	if req.Points != nil && *req.Points > 0 {
		ch.Points = *req.Points
	}
	if req.Difficulty != nil {
		if !validDifficulty(*req.Difficulty) {
			utils.Error(c, 1001, "Dificultad inválida (easy/medium/hard)")
			return
		}
		ch.Difficulty = models.ChallengeDifficulty(*req.Difficulty)
	}
	// The answer scheme tag is fixed at creation; only its payload may change.
	if req.Flag != nil {
		ch.Flag = *req.Flag
	}
	if req.Questions != nil {
		ch.Questions = mapQuestions(*req.Questions)
	}

	if err := ch.ValidateScheme(); err != nil {
		utils.Error(c, 1002, err.Error())
		return
	}
	if err := ctl.db.Save(&ch).Error; err != nil {
		utils.Error(c, 5000, "No se pudo actualizar el reto")
		return
	}
	utils.Success(c, "Reto actualizado", nil)
}

func (ctl *ChallengeController) DeleteChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := ctl.db.First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}

	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_challenges WHERE challenge_id = ?", ch.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&ch).Error
	})
	if err != nil {
		utils.Error(c, 5000, "No se pudo eliminar el reto")
		return
	}
	utils.Success(c, "Reto eliminado", nil)
}

// --- helpers ---

func (ctl *ChallengeController) solvedSet(profileID string) (map[uint32]bool, error) {
	var records []models.SolvedChallenge
	if err := ctl.db.Where("profile_id = ?", profileID).Find(&records).Error; err != nil {
		return nil, err
	}
	set := make(map[uint32]bool, len(records))
	for _, r := range records {
		set[r.ChallengeID] = true
	}
	return set, nil
}

func challengeItem(ch models.Challenge, solved bool) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:            ch.ID,
		Title:         ch.Title,
		Category:      categoryName(ch.Category),
		Difficulty:    string(ch.Difficulty),
		Points:        ch.Points,
		ChallengeType: string(ch.Type),
		Solved:        solved,
	}
}

func categoryName(category *models.Category) string {
	if category == nil {
		return ""
	}
	return category.Name
}

func sanitizeQuestions(questions []models.QuizQuestion) []dto.QuizQuestionResp {
	out := make([]dto.QuizQuestionResp, 0, len(questions))
	for _, q := range questions {
		options := make([]dto.QuizOptionResp, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.QuizOptionResp{ID: o.ID, Text: o.Text})
		}
		out = append(out, dto.QuizQuestionResp{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Arity:   string(q.Arity),
			Options: options,
		})
	}
	return out
}

func mapQuestions(reqs []dto.QuizQuestionReq) []models.QuizQuestion {
	if len(reqs) == 0 {
		return nil
	}
	questions := make([]models.QuizQuestion, 0, len(reqs))
	for i, q := range reqs {
		id := q.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		options := make([]models.QuizOption, 0, len(q.Options))
		for j, o := range q.Options {
			oid := o.ID
			if oid == "" {
				oid = strconv.Itoa(j + 1)
			}
			options = append(options, models.QuizOption{ID: oid, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, models.QuizQuestion{
			ID:      id,
			Prompt:  q.Prompt,
			Arity:   models.QuestionArity(strings.ToLower(q.Arity)),
			Options: options,
		})
	}
	return questions
}

func validDifficulty(d string) bool {
	switch models.ChallengeDifficulty(d) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard, models.DifficultyUndefined:
		return true
	}
	return false
}
