package app

import (
	"math"

	"olympiad-quiz-service/internal/domain"
)

// ComputeDistribution turns the configured total and percentages into per-difficulty quotas.
// Easy is floored at 1 before hard takes the remainder of the total; medium and hard are
// floored at 1 afterwards. With skewed percentages the quotas may add up to more than Total
// (by at most 2); Total itself is left as configured.
func ComputeDistribution(cfg domain.QuizConfig) domain.Distribution {
	total := cfg.TotalQuestionCount
	easy := atLeastOne(roundPercent(total, cfg.EasyPercent))
	medium := roundPercent(total, cfg.MediumPercent)
	hard := total - easy - medium

	return domain.Distribution{
		Total:  total,
		Easy:   easy,
		Medium: atLeastOne(medium),
		Hard:   atLeastOne(hard),
	}
}

func roundPercent(total, percent int) int {
	return int(math.Round(float64(total*percent) / 100))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
