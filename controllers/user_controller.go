// file: controllers/user_controller.go
package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/config"
	"github.com/xFraylin/Hackong-ctf/dto"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/services"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type UserController struct {
	db     *gorm.DB
	tokens *utils.TokenManager
	reset  *services.PasswordResetService
	cfg    *config.Config
}

func NewUserController(db *gorm.DB, tokens *utils.TokenManager, reset *services.PasswordResetService, cfg *config.Config) *UserController {
	return &UserController{db: db, tokens: tokens, reset: reset, cfg: cfg}
}

// --- Public endpoints ---

func (ctl *UserController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	req.Normalize()

	if req.Username == "" {
		utils.Error(c, 1001, "El nombre de usuario es obligatorio")
		return
	}
	if len(req.Password) < minPasswordLength {
		utils.Error(c, 1001, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	profile := models.Profile{
		Username: req.Username,
		Email:    models.InternalEmail(req.Username, ctl.cfg.AuthEmailDomain),
		Password: req.Password,
		Role:     models.RoleUser,
		Points:   0,
	}
	if err := ctl.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ese nombre de usuario ya está en uso")
			return
		}
		utils.Error(c, 5000, "Error al procesar el registro")
		return
	}

	utils.Success(c, "Cuenta creada correctamente", gin.H{
		"id":       profile.ID,
		"username": profile.Username,
		"role":     profile.Role,
	})
}

func (ctl *UserController) CheckUsername(c *gin.Context) {
	var req dto.CheckUsernameReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		utils.Error(c, 1001, "El nombre de usuario no puede estar vacío")
		return
	}

	var count int64
	if err := ctl.db.Model(&models.Profile{}).
		Where("username = ?", req.Username).
		Limit(1).
		Count(&count).Error; err != nil {
		utils.Error(c, 5000, "Error al verificar el nombre de usuario")
		return
	}

	utils.Success(c, "success", gin.H{"available": count == 0})
}

func (ctl *UserController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	var profile models.Profile
	if err := ctl.db.Where("username = ?", req.Username).First(&profile).Error; err != nil {
		utils.Error(c, 2002, "Usuario o contraseña incorrectos")
		return
	}
	if !profile.CheckPassword(req.Password) {
		utils.Error(c, 2002, "Usuario o contraseña incorrectos")
		return
	}

	token, err := ctl.tokens.Generate(profile)
	if err != nil {
		utils.Error(c, 5002, "No se pudo generar la sesión")
		return
	}

	c.SetCookie(middlewares.SessionCookie, token, int(ctl.cfg.SessionTTL.Seconds()), "/", "", false, true)
	utils.Success(c, "Sesión iniciada", gin.H{
		"token": token,
		"user": dto.ProfileSummaryResp{
			ID:       profile.ID,
			Username: profile.Username,
			Role:     string(profile.Role),
			Points:   profile.Points,
		},
	})
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
	utils.Success(c, "Sesión cerrada", nil)
}

func (ctl *UserController) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	token, err := ctl.reset.Request(c.Request.Context(), req.Username)
	if err != nil {
		// Same answer whether or not the account exists.
		utils.Success(c, "Si la cuenta existe, se ha generado un enlace de restablecimiento", nil)
		return
	}

	// The token would normally leave through a mail delivery hook; returned
	// here because accounts have no real mailbox.
	utils.Success(c, "Si la cuenta existe, se ha generado un enlace de restablecimiento", gin.H{
		"reset_token": token,
	})
}

func (ctl *UserController) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ConfirmPasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	if len(req.Password) < minPasswordLength {
		utils.Error(c, 1001, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	if err := ctl.reset.Confirm(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			utils.Error(c, 4005, err.Error())
			return
		}
		utils.Error(c, 5000, "No se pudo actualizar la contraseña")
		return
	}
	utils.Success(c, "Contraseña actualizada", nil)
}

// --- Authenticated endpoints ---

func (ctl *UserController) GetProfile(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)

	var profile models.Profile
	if err := ctl.db.First(&profile, "id = ?", profileID).Error; err != nil {
		utils.Error(c, 4004, "Usuario no encontrado")
		return
	}

	type solvedRow struct {
		ChallengeID uint32
		Title       string
		Points      int
		QuizScore   *int
		SolvedAt    time.Time
	}
	var rows []solvedRow
	ctl.db.Table("solved_challenges sc").
		Select("sc.challenge_id, ch.title, ch.points, sc.quiz_score, sc.solved_at").
		Joins("JOIN challenges ch ON ch.id = sc.challenge_id").
		Where("sc.profile_id = ?", profileID).
		Order("sc.solved_at desc").
		Scan(&rows)

	solved := make([]dto.SolvedItemResp, 0, len(rows))
	for _, r := range rows {
		solved = append(solved, dto.SolvedItemResp{
			ChallengeID: r.ChallengeID,
			Title:       r.Title,
			Points:      r.Points,
			QuizScore:   r.QuizScore,
			SolvedAt:    r.SolvedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", dto.ProfileDetailResp{
		ProfileSummaryResp: dto.ProfileSummaryResp{
			ID:       profile.ID,
			Username: profile.Username,
			Role:     string(profile.Role),
			Points:   profile.Points,
		},
		CreatedAt: profile.CreatedAt.Format("2006-01-02 15:04:05"),
		Solved:    solved,
	})
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	err := ctl.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("username", req.Username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ese nombre de usuario ya está en uso")
			return
		}
		utils.Error(c, 5000, "No se pudo actualizar el perfil")
		return
	}
	utils.Success(c, "Perfil actualizado", gin.H{"username": req.Username})
}

// --- Admin endpoints ---

func (ctl *UserController) GetUserList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	query := c.Query("query")

	db := ctl.db.Model(&models.Profile{})
	if query != "" {
		db = db.Where("username LIKE ?", "%"+query+"%")
	}

	var total int64
	db.Count(&total)

	var profiles []models.Profile
	db.Order("points desc, created_at asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&profiles)

	users := make([]dto.ProfileSummaryResp, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, dto.ProfileSummaryResp{
			ID:       p.ID,
			Username: p.Username,
			Role:     string(p.Role),
			Points:   p.Points,
		})
	}
	utils.Success(c, "success", gin.H{
		"total": total,
		"users": users,
	})
}

func (ctl *UserController) UpdateUserRole(c *gin.Context) {
	targetID := c.Param("id")

	var req dto.UpdateUserRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Rol inválido")
		return
	}

	var profile models.Profile
	if err := ctl.db.First(&profile, "id = ?", targetID).Error; err != nil {
		utils.Error(c, 4004, "Usuario no encontrado")
		return
	}

	if err := ctl.db.Model(&profile).Update("role", req.Role).Error; err != nil {
		utils.Error(c, 5000, "No se pudo actualizar el rol")
		return
	}
	utils.Success(c, "Rol actualizado", gin.H{
		"user_id": profile.ID,
		"role":    req.Role,
	})
}
