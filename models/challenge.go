// file: models/challenge.go
package models

import (
	"errors"
	"time"
)

type ChallengeType string
type ChallengeDifficulty string
type QuestionArity string

const (
	ChallengeTypeFlag ChallengeType = "flag"
	ChallengeTypeQuiz ChallengeType = "quiz"

	DifficultyEasy      ChallengeDifficulty = "easy"
	DifficultyMedium    ChallengeDifficulty = "medium"
	DifficultyHard      ChallengeDifficulty = "hard"
	DifficultyUndefined ChallengeDifficulty = "undefined"

	AritySingle   QuestionArity = "single"
	ArityMultiple QuestionArity = "multiple"
)

type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestion struct {
	ID      string        `json:"id"`
	Prompt  string        `json:"prompt"`
	Arity   QuestionArity `json:"arity"`
	Options []QuizOption  `json:"options"`
}

// CorrectOptionIDs returns the ids of the options tagged correct, in order.
func (q QuizQuestion) CorrectOptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Challenge is one puzzle. The answer scheme is a tagged variant decided at
// write time: Type=flag uses the Flag secret, Type=quiz uses Questions.
type Challenge struct {
	ID          uint32              `gorm:"primarykey" json:"id"`
	Title       string              `gorm:"size:100;not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	CategoryID  *uint32             `json:"category_id,omitempty"`
	Category    *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Points      int                 `gorm:"not null" json:"points"`
	Difficulty  ChallengeDifficulty `gorm:"size:20;default:'undefined'" json:"difficulty"`
	FileURL     string              `gorm:"size:2048" json:"file_url,omitempty"`
	Type        ChallengeType       `gorm:"column:challenge_type;size:10;not null" json:"challenge_type"`
	Flag        string              `gorm:"size:255" json:"-"`
	Questions   []QuizQuestion      `gorm:"serializer:json" json:"-"`
	CreatedBy   string              `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

var (
	ErrFlagRequired      = errors.New("un reto de tipo flag necesita una flag")
	ErrNoQuestions       = errors.New("un quiz necesita al menos una pregunta")
	ErrTooFewOptions     = errors.New("cada pregunta necesita al menos dos opciones")
	ErrNoCorrectOption   = errors.New("cada pregunta necesita al menos una opción correcta")
	ErrBadSingleQuestion = errors.New("una pregunta de respuesta única debe tener exactamente una opción correcta")
	ErrBadArity          = errors.New("tipo de pregunta inválido (single/multiple)")
	ErrBadChallengeType  = errors.New("tipo de reto inválido (flag/quiz)")
)

// ValidateScheme enforces the answer-scheme invariants before any write.
func (c *Challenge) ValidateScheme() error {
	switch c.Type {
	case ChallengeTypeFlag:
		if c.Flag == "" {
			return ErrFlagRequired
		}
	case ChallengeTypeQuiz:
		if len(c.Questions) == 0 {
			return ErrNoQuestions
		}
		for _, q := range c.Questions {
			if q.Arity != AritySingle && q.Arity != ArityMultiple {
				return ErrBadArity
			}
			if len(q.Options) < 2 {
				return ErrTooFewOptions
			}
			correct := len(q.CorrectOptionIDs())
			if correct == 0 {
				return ErrNoCorrectOption
			}
			if q.Arity == AritySingle && correct != 1 {
				return ErrBadSingleQuestion
			}
		}
	default:
		return ErrBadChallengeType
	}
	return nil
}
