// file: controllers/ranking_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/services"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

type RankingController struct {
	db      *gorm.DB
	ranking *services.RankingService
}

func NewRankingController(db *gorm.DB, ranking *services.RankingService) *RankingController {
	return &RankingController{db: db, ranking: ranking}
}

func (ctl *RankingController) GetRanking(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := ctl.ranking.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		utils.Error(c, 5000, "Error al consultar el ranking")
		return
	}
	utils.Success(c, "success", gin.H{
		"total":   len(entries),
		"ranking": entries,
	})
}

// GetDashboard returns the logged-in learner's progress summary.
func (ctl *RankingController) GetDashboard(c *gin.Context) {
	profileID := c.GetString(middlewares.CtxProfileID)

	var profile models.Profile
	if err := ctl.db.First(&profile, "id = ?", profileID).Error; err != nil {
		utils.Error(c, 4004, "Perfil no encontrado")
		return
	}

	var solvedCount int64
	ctl.db.Model(&models.SolvedChallenge{}).
		Where("profile_id = ?", profileID).
		Count(&solvedCount)

	var totalChallenges int64
	ctl.db.Model(&models.Challenge{}).Count(&totalChallenges)

	type recentRow struct {
		ChallengeID uint32 `json:"challenge_id"`
		Title       string `json:"title"`
		Points      int    `json:"points"`
		SolvedAt    string `json:"solved_at"`
	}
	var rows []struct {
		ChallengeID uint32
		Title       string
		Points      int
		QuizScore   *int
		SolvedAt    time.Time
	}
	ctl.db.Table("solved_challenges").
		Select("solved_challenges.challenge_id, challenges.title, challenges.points, solved_challenges.quiz_score, solved_challenges.solved_at").
		Joins("join challenges on challenges.id = solved_challenges.challenge_id").
		Where("solved_challenges.profile_id = ?", profileID).
		Order("solved_challenges.solved_at desc").
		Limit(5).
		Scan(&rows)

	recent := make([]recentRow, 0, len(rows))
	for _, r := range rows {
		awarded := r.Points
		if r.QuizScore != nil {
			awarded = services.ProratedPoints(*r.QuizScore, r.Points)
		}
		recent = append(recent, recentRow{
			ChallengeID: r.ChallengeID,
			Title:       r.Title,
			Points:      awarded,
			SolvedAt:    r.SolvedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"username":         profile.Username,
		"points":           profile.Points,
		"solved_count":     solvedCount,
		"total_challenges": totalChallenges,
		"recent_solves":    recent,
	})
}
