package app

import (
	"slices"
	"strings"

	"olympiad-quiz-service/internal/domain"
)

// Buckets groups candidate questions by difficulty.
type Buckets map[domain.Difficulty][]domain.Question

// Empty reports whether no bucket has a candidate.
func (b Buckets) Empty() bool {
	for _, qs := range b {
		if len(qs) > 0 {
			return false
		}
	}
	return true
}

// SelectQuestions picks the quota of every bucket from a seeded shuffle, backfills any
// shortfall from the unused easy questions and interleaves the result with one more shuffle.
// Buckets are processed easy, medium, hard and each is ordered by ID first, so the result
// depends only on the bucket contents and the seed.
func SelectQuestions(buckets Buckets, dist domain.Distribution, seed int64) []domain.Question {
	var (
		selected  []domain.Question
		easySpare []domain.Question
	)
	for _, d := range domain.Difficulties {
		shuffled := SeededShuffle(sortedByID(buckets[d]), seed+bucketSeedOffset(d))
		n := min(dist.For(d), len(shuffled))
		selected = append(selected, shuffled[:n]...)
		if d == domain.DifficultyEasy {
			easySpare = shuffled[n:]
		}
	}

	if short := dist.Total - len(selected); short > 0 {
		selected = append(selected, easySpare[:min(short, len(easySpare))]...)
	}

	return SeededShuffle(selected, seed+combineSeedOffset)
}

func sortedByID(qs []domain.Question) []domain.Question {
	out := slices.Clone(qs)
	slices.SortStableFunc(out, func(a, b domain.Question) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
