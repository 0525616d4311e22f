package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/pkg/validator"
)

// AttemptStore records quiz completions. CreateAttempt returns domain.ErrAttemptExists
// when the profile already has an attempt of the same type on that date.
type AttemptStore interface {
	CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	ListAttempts(ctx context.Context, date string) ([]domain.QuizAttempt, error)
}

// CreditSink receives credit awards for completed quizzes.
type CreditSink interface {
	Award(ctx context.Context, award domain.CreditAward) error
}

// AttemptPublisher fans recorded attempts out to live subscribers.
type AttemptPublisher interface {
	Publish(attempt domain.QuizAttempt)
}

// AttemptService records daily quiz submissions and awards completion credits.
type AttemptService struct {
	attempts     AttemptStore
	credits      CreditSink
	publisher    AttemptPublisher
	calendar     Calendar
	rewardAmount int
	baseLanguage string
	log          *zap.Logger
}

func NewAttemptService(attempts AttemptStore, credits CreditSink, publisher AttemptPublisher, calendar Calendar, rewardAmount int, baseLanguage string, log *zap.Logger) *AttemptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AttemptService{
		attempts:     attempts,
		credits:      credits,
		publisher:    publisher,
		calendar:     calendar,
		rewardAmount: rewardAmount,
		baseLanguage: domain.NormalizeLanguage(baseLanguage, domain.BaseLanguage),
		log:          log,
	}
}

// Submit records today's daily quiz attempt for a profile. A second submission on the
// same day fails with domain.ErrAttemptExists. Credit failures are logged and do not
// undo the attempt.
func (s *AttemptService) Submit(ctx context.Context, sub domain.Submission) (domain.QuizAttempt, error) {
	if err := validator.ValidateStruct(sub); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("%w: %v", domain.ErrInvalidSubmission, err)
	}

	now := s.calendar.Now()
	attempt := domain.QuizAttempt{
		ID:             uuid.NewString(),
		ProfileID:      sub.ProfileID,
		UserID:         sub.UserID,
		Date:           s.calendar.Today(),
		Type:           domain.AttemptTypeDaily,
		Language:       domain.NormalizeLanguage(sub.Language, s.baseLanguage),
		Score:          sub.Score,
		CorrectAnswers: sub.CorrectAnswers,
		TotalQuestions: sub.TotalQuestions,
		TimeSpent:      sub.TimeSpent,
		CompletedAt:    now.UTC(),
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return domain.QuizAttempt{}, err
	}

	if s.credits != nil && s.rewardAmount > 0 {
		award := domain.CreditAward{
			ID:        uuid.NewString(),
			ProfileID: attempt.ProfileID,
			Amount:    s.rewardAmount,
			Reason:    "daily quiz completion",
			Reference: attempt.ID,
			CreatedAt: now.UTC(),
		}
		if err := s.credits.Award(ctx, award); err != nil {
			s.log.Warn("credit award failed",
				zap.String("profile_id", attempt.ProfileID),
				zap.String("attempt_id", attempt.ID),
				zap.Error(err))
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(attempt)
	}
	s.log.Info("daily quiz attempt recorded",
		zap.String("profile_id", attempt.ProfileID),
		zap.String("date", attempt.Date),
		zap.Int("correct", attempt.CorrectAnswers),
		zap.Int("total", attempt.TotalQuestions))
	return attempt, nil
}

// Attempts lists the attempts recorded on date.
func (s *AttemptService) Attempts(ctx context.Context, date string) ([]domain.QuizAttempt, error) {
	if _, err := SeedForDate(date); err != nil {
		return nil, err
	}
	return s.attempts.ListAttempts(ctx, date)
}
