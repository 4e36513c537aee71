// file: services/scoring_service.go
package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/xFraylin/Hackong-ctf/models"
	"gorm.io/gorm"
)

// MaxQuizAttempts is the policy constant: a learner may score below 100%
// once and still retry; the second sub-100% pass exhausts the quiz.
const MaxQuizAttempts = 2

var (
	ErrChallengeNotFound = errors.New("reto no encontrado")
	ErrWrongFlag         = errors.New("la flag introducida no es correcta")
	ErrAlreadySolved     = errors.New("reto ya resuelto")
	ErrAttemptsExhausted = errors.New("has agotado tus intentos para este quiz")
	ErrNotFlagChallenge  = errors.New("este reto no acepta flags")
	ErrNotQuizChallenge  = errors.New("este reto no es un quiz")
)

// QuizAnswers maps question id to the set of selected option ids.
type QuizAnswers map[string][]string

type QuizResult struct {
	Score          int             `json:"score"`
	CorrectCount   int             `json:"correct_count"`
	TotalQuestions int             `json:"total_questions"`
	PerQuestion    map[string]bool `json:"per_question"`
	AttemptsUsed   int             `json:"attempts_used"`
	AttemptsLeft   int             `json:"attempts_left"`
	Completed      bool            `json:"completed"`
	Recorded       bool            `json:"recorded"`
	PointsAwarded  int             `json:"points_awarded"`
}

// ScoringService judges candidate answers and persists solves. Both writes
// of a credit (solved row + point increment) happen in one transaction, so a
// store failure rolls back wholesale and the caller may simply resubmit.
type ScoringService struct {
	db      *gorm.DB
	ranking *RankingService
}

func NewScoringService(db *gorm.DB, ranking *RankingService) *ScoringService {
	return &ScoringService{db: db, ranking: ranking}
}

// SubmitFlag judges a candidate flag. Comparison is exact: no trimming, no
// case folding. A wrong flag changes no state and may be retried forever.
func (s *ScoringService) SubmitFlag(ctx context.Context, profileID string, challengeID uint32, candidate string) (int, error) {
	db := s.db.WithContext(ctx)

	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		return 0, ErrChallengeNotFound
	}
	if challenge.Type != models.ChallengeTypeFlag {
		return 0, ErrNotFlagChallenge
	}

	solved, err := s.isSolved(db, profileID, challengeID)
	if err != nil {
		return 0, err
	}
	if solved {
		return 0, ErrAlreadySolved
	}

	if candidate != challenge.Flag {
		return 0, ErrWrongFlag
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		record := models.SolvedChallenge{
			ProfileID:   profileID,
			ChallengeID: challengeID,
			SolvedAt:    time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			// Two submissions can race past the pre-check; the composite
			// primary key decides, and the loser is "already solved".
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySolved
			}
			return err
		}
		return creditPoints(tx, profileID, challenge.Points)
	})
	if err != nil {
		return 0, err
	}

	s.invalidateRanking(ctx)
	return challenge.Points, nil
}

// SubmitQuiz grades one full pass over a quiz challenge and advances the
// attempt state. A 100% score or an exhausted second attempt writes the
// terminal solved record; a sub-100% first attempt persists nothing beyond
// the attempt counter.
func (s *ScoringService) SubmitQuiz(ctx context.Context, profileID string, challengeID uint32, answers QuizAnswers) (*QuizResult, error) {
	db := s.db.WithContext(ctx)

	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		return nil, ErrChallengeNotFound
	}
	if challenge.Type != models.ChallengeTypeQuiz {
		return nil, ErrNotQuizChallenge
	}

	solved, err := s.isSolved(db, profileID, challengeID)
	if err != nil {
		return nil, err
	}
	if solved {
		return nil, ErrAlreadySolved
	}

	score, perQuestion := GradeQuiz(challenge.Questions, answers)
	correct := 0
	for _, ok := range perQuestion {
		if ok {
			correct++
		}
	}

	result := &QuizResult{
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: len(challenge.Questions),
		PerQuestion:    perQuestion,
		Completed:      score == 100,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var attempt models.QuizAttempt
		findErr := tx.Where("profile_id = ? AND challenge_id = ?", profileID, challengeID).
			First(&attempt).Error
		isNew := errors.Is(findErr, gorm.ErrRecordNotFound)
		if findErr != nil && !isNew {
			return findErr
		}
		if attempt.AttemptsUsed >= MaxQuizAttempts {
			return ErrAttemptsExhausted
		}

		if isNew {
			attempt = models.QuizAttempt{
				ProfileID:    profileID,
				ChallengeID:  challengeID,
				AttemptsUsed: 1,
				LastScore:    score,
			}
			if err := tx.Create(&attempt).Error; err != nil {
				return err
			}
		} else {
			attempt.AttemptsUsed++
			attempt.LastScore = score
			if err := tx.Model(&models.QuizAttempt{}).
				Where("profile_id = ? AND challenge_id = ?", profileID, challengeID).
				Updates(map[string]interface{}{
					"attempts_used": attempt.AttemptsUsed,
					"last_score":    score,
				}).Error; err != nil {
				return err
			}
		}
		result.AttemptsUsed = attempt.AttemptsUsed

		// Terminal outcomes write the one and only solved record.
		if score == 100 {
			if err := createSolved(tx, profileID, challengeID, &score); err != nil {
				return err
			}
			result.PointsAwarded = challenge.Points
			return creditPoints(tx, profileID, challenge.Points)
		}
		if attempt.AttemptsUsed >= MaxQuizAttempts {
			if err := createSolved(tx, profileID, challengeID, &score); err != nil {
				return err
			}
			result.PointsAwarded = ProratedPoints(score, challenge.Points)
			return creditPoints(tx, profileID, result.PointsAwarded)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.AttemptsLeft = MaxQuizAttempts - result.AttemptsUsed
	if result.AttemptsLeft < 0 {
		result.AttemptsLeft = 0
	}
	result.Recorded = result.Completed || result.AttemptsUsed >= MaxQuizAttempts

	if result.PointsAwarded > 0 {
		s.invalidateRanking(ctx)
	}
	return result, nil
}

// GradeQuiz applies the per-question rules: single-arity questions are
// correct iff exactly the designated option was selected; multiple-arity
// questions iff the selected set equals the correct set. No partial credit
// per question, only at the whole-quiz percentage.
func GradeQuiz(questions []models.QuizQuestion, answers QuizAnswers) (int, map[string]bool) {
	results := make(map[string]bool, len(questions))
	correct := 0
	for _, q := range questions {
		selected := answers[q.ID]
		correctIDs := q.CorrectOptionIDs()

		ok := false
		switch q.Arity {
		case models.AritySingle:
			ok = len(selected) == 1 && containsID(correctIDs, selected[0])
		case models.ArityMultiple:
			ok = sameSet(selected, correctIDs)
		}
		if ok {
			correct++
		}
		results[q.ID] = ok
	}
	if len(questions) == 0 {
		return 0, results
	}
	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return score, results
}

// ProratedPoints is the credit for an exhausted quiz: round(score/100 * points).
func ProratedPoints(score, points int) int {
	return int(math.Round(float64(score) / 100 * float64(points)))
}

func (s *ScoringService) isSolved(db *gorm.DB, profileID string, challengeID uint32) (bool, error) {
	var record models.SolvedChallenge
	err := db.Where("profile_id = ? AND challenge_id = ?", profileID, challengeID).
		First(&record).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *ScoringService) invalidateRanking(ctx context.Context) {
	if s.ranking != nil {
		s.ranking.Invalidate(ctx)
	}
}

func createSolved(tx *gorm.DB, profileID string, challengeID uint32, quizScore *int) error {
	record := models.SolvedChallenge{
		ProfileID:   profileID,
		ChallengeID: challengeID,
		SolvedAt:    time.Now(),
	}
	if quizScore != nil {
		score := *quizScore
		record.QuizScore = &score
	}
	if err := tx.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySolved
		}
		return err
	}
	return nil
}

func creditPoints(tx *gorm.DB, profileID string, points int) error {
	if points <= 0 {
		return nil
	}
	// Atomic increment at the store; no read-modify-write race.
	return tx.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sameSet(selected, correct []string) bool {
	sel := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		sel[id] = struct{}{}
	}
	if len(sel) != len(correct) {
		return false
	}
	for _, id := range correct {
		if _, ok := sel[id]; !ok {
			return false
		}
	}
	return true
}
