// file: services/scoring_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xFraylin/Hackong-ctf/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database per test keeps gorm's pooled connections on
	// the same store without leaking rows between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Challenge{},
		&models.Room{},
		&models.SolvedChallenge{},
		&models.QuizAttempt{},
	))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		Username: username,
		Email:    username + "@auth.test.local",
		Password: "secret123",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedFlagChallenge(t *testing.T, db *gorm.DB, flag string, points int) *models.Challenge {
	t.Helper()
	ch := &models.Challenge{
		Title:       "SQLi básica",
		Description: "Encuentra la flag",
		Points:      points,
		Type:        models.ChallengeTypeFlag,
		Flag:        flag,
	}
	require.NoError(t, db.Create(ch).Error)
	return ch
}

// twoQuestionQuiz has one single-arity and one multiple-arity question, so a
// half-right pass lands exactly on 50.
func seedQuizChallenge(t *testing.T, db *gorm.DB, points int) *models.Challenge {
	t.Helper()
	ch := &models.Challenge{
		Title:       "Redes 101",
		Description: "Cuestionario",
		Points:      points,
		Type:        models.ChallengeTypeQuiz,
		Questions: []models.QuizQuestion{
			{
				ID:     "q1",
				Prompt: "¿Qué puerto usa HTTPS?",
				Arity:  models.AritySingle,
				Options: []models.QuizOption{
					{ID: "a", Text: "80"},
					{ID: "b", Text: "443", IsCorrect: true},
					{ID: "c", Text: "22"},
				},
			},
			{
				ID:     "q2",
				Prompt: "¿Cuáles son protocolos de transporte?",
				Arity:  models.ArityMultiple,
				Options: []models.QuizOption{
					{ID: "a", Text: "TCP", IsCorrect: true},
					{ID: "b", Text: "UDP", IsCorrect: true},
					{ID: "c", Text: "HTTP"},
				},
			},
		},
	}
	require.NoError(t, db.Create(ch).Error)
	return ch
}

func profilePoints(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p models.Profile
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.Points
}

func TestSubmitFlagCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	ch := seedFlagChallenge(t, db, "CTF{hola}", 100)

	points, err := svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "CTF{hola}")
	require.NoError(t, err)
	assert.Equal(t, 100, points)
	assert.Equal(t, 100, profilePoints(t, db, profile.ID))

	var record models.SolvedChallenge
	require.NoError(t, db.Where("profile_id = ? AND challenge_id = ?", profile.ID, ch.ID).First(&record).Error)
	assert.Nil(t, record.QuizScore)
}

func TestSubmitFlagIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	ch := seedFlagChallenge(t, db, "CTF{hola}", 100)

	_, err := svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "ctf{hola}")
	assert.ErrorIs(t, err, ErrWrongFlag)

	_, err = svc.SubmitFlag(context.Background(), profile.ID, ch.ID, " CTF{hola} ")
	assert.ErrorIs(t, err, ErrWrongFlag)

	assert.Equal(t, 0, profilePoints(t, db, profile.ID))
}

func TestSubmitFlagWrongThenRight(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	ch := seedFlagChallenge(t, db, "CTF{hola}", 100)

	// Wrong guesses never burn anything.
	for i := 0; i < 5; i++ {
		_, err := svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "CTF{no}")
		assert.ErrorIs(t, err, ErrWrongFlag)
	}

	points, err := svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "CTF{hola}")
	require.NoError(t, err)
	assert.Equal(t, 100, points)
}

func TestSubmitFlagOnlyCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	ch := seedFlagChallenge(t, db, "CTF{hola}", 100)

	_, err := svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "CTF{hola}")
	require.NoError(t, err)

	_, err = svc.SubmitFlag(context.Background(), profile.ID, ch.ID, "CTF{hola}")
	assert.ErrorIs(t, err, ErrAlreadySolved)
	assert.Equal(t, 100, profilePoints(t, db, profile.ID))
}

func TestSubmitFlagRejectsQuizChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 100)

	_, err := svc.SubmitFlag(context.Background(), profile.ID, quiz.ID, "CTF{hola}")
	assert.ErrorIs(t, err, ErrNotFlagChallenge)
}

func TestSubmitFlagUnknownChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")

	_, err := svc.SubmitFlag(context.Background(), profile.ID, 999, "CTF{hola}")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestSubmitQuizPerfectFirstAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 200)

	result, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{
		"q1": {"b"},
		"q2": {"a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Completed)
	assert.True(t, result.Recorded)
	assert.Equal(t, 1, result.AttemptsUsed)
	assert.Equal(t, 200, result.PointsAwarded)
	assert.Equal(t, 200, profilePoints(t, db, profile.ID))

	var record models.SolvedChallenge
	require.NoError(t, db.Where("profile_id = ? AND challenge_id = ?", profile.ID, quiz.ID).First(&record).Error)
	require.NotNil(t, record.QuizScore)
	assert.Equal(t, 100, *record.QuizScore)
}

func TestSubmitQuizFirstAttemptBelowHundredPersistsNoSolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 200)

	result, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{
		"q1": {"b"},
		"q2": {"a"},
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Completed)
	assert.False(t, result.Recorded)
	assert.Equal(t, 1, result.AttemptsUsed)
	assert.Equal(t, 1, result.AttemptsLeft)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.Equal(t, 0, profilePoints(t, db, profile.ID))

	var n int64
	db.Model(&models.SolvedChallenge{}).Where("profile_id = ?", profile.ID).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestSubmitQuizSecondAttemptProrates(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 200)

	_, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{})
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{
		"q1": {"b"},
		"q2": {"a"},
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Completed)
	assert.True(t, result.Recorded)
	assert.Equal(t, 2, result.AttemptsUsed)
	assert.Equal(t, 0, result.AttemptsLeft)
	assert.Equal(t, 100, result.PointsAwarded)
	assert.Equal(t, 100, profilePoints(t, db, profile.ID))

	var record models.SolvedChallenge
	require.NoError(t, db.Where("profile_id = ? AND challenge_id = ?", profile.ID, quiz.ID).First(&record).Error)
	require.NotNil(t, record.QuizScore)
	assert.Equal(t, 50, *record.QuizScore)
}

func TestSubmitQuizThirdAttemptExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 200)

	_, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{})
	require.NoError(t, err)
	_, err = svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{"q1": {"b"}})
	require.NoError(t, err)

	// The second pass recorded the solve, so this surfaces as already solved.
	_, err = svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{"q1": {"b"}})
	assert.ErrorIs(t, err, ErrAlreadySolved)
}

func TestSubmitQuizAfterCompletionIsAlreadySolved(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	quiz := seedQuizChallenge(t, db, 200)

	_, err := svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{
		"q1": {"b"},
		"q2": {"a", "b"},
	})
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(context.Background(), profile.ID, quiz.ID, QuizAnswers{
		"q1": {"b"},
		"q2": {"a", "b"},
	})
	assert.ErrorIs(t, err, ErrAlreadySolved)
	assert.Equal(t, 200, profilePoints(t, db, profile.ID))
}

func TestSubmitQuizRejectsFlagChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db, nil)
	profile := seedProfile(t, db, "alice")
	ch := seedFlagChallenge(t, db, "CTF{hola}", 100)

	_, err := svc.SubmitQuiz(context.Background(), profile.ID, ch.ID, QuizAnswers{})
	assert.ErrorIs(t, err, ErrNotQuizChallenge)
}

func TestGradeQuizSingleArity(t *testing.T) {
	questions := []models.QuizQuestion{{
		ID:    "q1",
		Arity: models.AritySingle,
		Options: []models.QuizOption{
			{ID: "a", IsCorrect: true},
			{ID: "b"},
		},
	}}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"correct option", []string{"a"}, true},
		{"wrong option", []string{"b"}, false},
		{"nothing selected", nil, false},
		{"extra selection", []string{"a", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, per := GradeQuiz(questions, QuizAnswers{"q1": tt.selected})
			assert.Equal(t, tt.want, per["q1"])
		})
	}
}

func TestGradeQuizMultipleArity(t *testing.T) {
	questions := []models.QuizQuestion{{
		ID:    "q1",
		Arity: models.ArityMultiple,
		Options: []models.QuizOption{
			{ID: "a", IsCorrect: true},
			{ID: "b", IsCorrect: true},
			{ID: "c"},
		},
	}}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact set", []string{"a", "b"}, true},
		{"order does not matter", []string{"b", "a"}, true},
		{"missing one", []string{"a"}, false},
		{"extra one", []string{"a", "b", "c"}, false},
		{"nothing selected", nil, false},
		{"duplicates collapse", []string{"a", "a", "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, per := GradeQuiz(questions, QuizAnswers{"q1": tt.selected})
			assert.Equal(t, tt.want, per["q1"])
		})
	}
}

func TestGradeQuizScoreRounds(t *testing.T) {
	questions := []models.QuizQuestion{
		{ID: "q1", Arity: models.AritySingle, Options: []models.QuizOption{{ID: "a", IsCorrect: true}, {ID: "b"}}},
		{ID: "q2", Arity: models.AritySingle, Options: []models.QuizOption{{ID: "a", IsCorrect: true}, {ID: "b"}}},
		{ID: "q3", Arity: models.AritySingle, Options: []models.QuizOption{{ID: "a", IsCorrect: true}, {ID: "b"}}},
	}

	score, _ := GradeQuiz(questions, QuizAnswers{"q1": {"a"}})
	assert.Equal(t, 33, score)

	score, _ = GradeQuiz(questions, QuizAnswers{"q1": {"a"}, "q2": {"a"}})
	assert.Equal(t, 67, score)
}

func TestProratedPoints(t *testing.T) {
	assert.Equal(t, 100, ProratedPoints(50, 200))
	assert.Equal(t, 0, ProratedPoints(0, 200))
	assert.Equal(t, 200, ProratedPoints(100, 200))
	assert.Equal(t, 50, ProratedPoints(33, 150))
}
