package domain

import "time"

// Difficulty is the normalized difficulty tier of a question.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = ""
)

// Difficulties lists the tiers in the order buckets are selected.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// OptionCount is the fixed number of choices per question (A-D).
const OptionCount = 4

// DefaultCategory is used when a stored question has no category.
const DefaultCategory = "General"

// Question models a normalized multiple-choice item.
type Question struct {
	ID                 string
	Text               string
	Options            [OptionCount]string
	CorrectOptionIndex int
	Difficulty         Difficulty
	Category           string
	Language           string
}

// QuestionView is the client-facing shape of a question.
type QuestionView struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
}

// View formats a question for delivery. Unknown difficulties are reported as medium.
func (q Question) View() QuestionView {
	difficulty := q.Difficulty
	if difficulty == DifficultyUnknown {
		difficulty = DifficultyMedium
	}
	options := make([]string, OptionCount)
	copy(options, q.Options[:])
	return QuestionView{
		ID:            q.ID,
		Question:      q.Text,
		Options:       options,
		CorrectAnswer: q.CorrectOptionIndex,
		Difficulty:    difficulty,
		Category:      q.Category,
	}
}

// QuizConfigType is the type tag of the singleton quiz configuration record.
const QuizConfigType = "daily_quiz"

// QuizConfig holds the admin-adjustable daily quiz settings.
type QuizConfig struct {
	TotalQuestionCount int       `json:"dailyQuizQuestionCount" validate:"min=5,max=50"`
	EasyPercent        int       `json:"easyPercentage" validate:"min=0,max=100"`
	MediumPercent      int       `json:"mediumPercentage" validate:"min=0,max=100"`
	HardPercent        int       `json:"hardPercentage" validate:"min=0,max=100"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// DefaultQuizConfig returns the settings used until an admin changes them.
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		TotalQuestionCount: 10,
		EasyPercent:        40,
		MediumPercent:      40,
		HardPercent:        20,
	}
}

// Distribution is the per-difficulty quota derived from a QuizConfig.
type Distribution struct {
	Total  int
	Easy   int
	Medium int
	Hard   int
}

// For returns the quota of a single difficulty.
func (d Distribution) For(difficulty Difficulty) int {
	switch difficulty {
	case DifficultyEasy:
		return d.Easy
	case DifficultyMedium:
		return d.Medium
	case DifficultyHard:
		return d.Hard
	}
	return 0
}

// DailySelection is the persisted question set for one (date, language) pair.
type DailySelection struct {
	Date          string         `json:"date"`
	Language      string         `json:"language"`
	Questions     []QuestionView `json:"questions"`
	Seed          int64          `json:"seed"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	QuestionCount int            `json:"questionCount"`
}

// DailyQuiz is the result of a daily questions request.
type DailyQuiz struct {
	Selection DailySelection
	Cached    bool
	// Message explains an empty selection.
	Message string
}

// AttemptTypeDaily marks an attempt at the daily quiz.
const AttemptTypeDaily = "daily"

// Submission is the payload of a quiz completion.
type Submission struct {
	ProfileID      string `json:"profileId" validate:"required"`
	UserID         string `json:"userId"`
	Score          int    `json:"score" validate:"min=0"`
	CorrectAnswers int    `json:"correctAnswers" validate:"min=0,ltefield=TotalQuestions"`
	TotalQuestions int    `json:"totalQuestions" validate:"min=1"`
	TimeSpent      int    `json:"timeSpent" validate:"min=0"`
	Language       string `json:"language"`
}

// QuizAttempt is a recorded quiz completion.
type QuizAttempt struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profileId"`
	UserID         string    `json:"userId"`
	Date           string    `json:"date"`
	Type           string    `json:"type"`
	Language       string    `json:"language"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	TimeSpent      int       `json:"timeSpent"`
	CompletedAt    time.Time `json:"completedAt"`
}

// CreditAward is a single entry handed to the credit ledger.
type CreditAward struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}
