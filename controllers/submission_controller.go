// file: controllers/submission_controller.go
package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/dto"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/services"
	"github.com/xFraylin/Hackong-ctf/utils"
)

type SubmissionController struct {
	scoring *services.ScoringService
}

func NewSubmissionController(scoring *services.ScoringService) *SubmissionController {
	return &SubmissionController{scoring: scoring}
}

// SubmitFlag judges a flag submission. Wrong flags are free to retry;
// transient store failures come back as a retryable error and the learner
// simply resubmits.
func (ctl *SubmissionController) SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))
	profileID := c.GetString(middlewares.CtxProfileID)

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	if req.Flag == "" {
		utils.Error(c, 1001, "Por favor, introduce una flag")
		return
	}

	points, err := ctl.scoring.SubmitFlag(c.Request.Context(), profileID, uint32(challengeID), req.Flag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, err.Error())
		case errors.Is(err, services.ErrNotFlagChallenge):
			utils.Error(c, 1002, err.Error())
		case errors.Is(err, services.ErrWrongFlag):
			utils.Error(c, 3001, "La flag introducida no es correcta. Inténtalo de nuevo.")
		case errors.Is(err, services.ErrAlreadySolved):
			utils.Error(c, 2002, "Ya has resuelto este reto anteriormente.")
		default:
			utils.Error(c, 5001, "Error al procesar la flag. Inténtalo de nuevo.")
		}
		return
	}

	utils.Success(c, fmt.Sprintf("¡Flag correcta! Has ganado %d puntos.", points), gin.H{
		"points_awarded": points,
	})
}

// SubmitQuiz grades one pass over a quiz and reports the attempt state.
func (ctl *SubmissionController) SubmitQuiz(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))
	profileID := c.GetString(middlewares.CtxProfileID)

	var req dto.SubmitQuizReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	result, err := ctl.scoring.SubmitQuiz(c.Request.Context(), profileID, uint32(challengeID), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, err.Error())
		case errors.Is(err, services.ErrNotQuizChallenge):
			utils.Error(c, 1002, err.Error())
		case errors.Is(err, services.ErrAlreadySolved):
			utils.Error(c, 2002, "Ya has resuelto este reto anteriormente.")
		case errors.Is(err, services.ErrAttemptsExhausted):
			utils.Error(c, 2003, "Has agotado tus intentos para este quiz.")
		default:
			utils.Error(c, 5001, "Error al procesar el quiz. Inténtalo de nuevo.")
		}
		return
	}

	msg := quizMessage(result)
	utils.Success(c, msg, result)
}

func quizMessage(r *services.QuizResult) string {
	switch {
	case r.Completed:
		return fmt.Sprintf("¡Quiz completado! Has obtenido %d%% de respuestas correctas.", r.Score)
	case r.Recorded:
		return fmt.Sprintf("Has obtenido %d%% de respuestas correctas. Has agotado tus %d intentos.", r.Score, services.MaxQuizAttempts)
	default:
		return fmt.Sprintf("Has obtenido %d%% de respuestas correctas. Te queda %d intento.", r.Score, r.AttemptsLeft)
	}
}
