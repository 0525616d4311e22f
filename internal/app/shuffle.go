package app

import (
	"fmt"
	"math"
	"time"

	"olympiad-quiz-service/internal/domain"
)

// DateLayout is the calendar date format used for selection keys.
const DateLayout = "2006-01-02"

// Seed offsets per selection stage.
const (
	easySeedOffset    = 0
	mediumSeedOffset  = 1000
	hardSeedOffset    = 2000
	combineSeedOffset = 3000
)

func bucketSeedOffset(d domain.Difficulty) int64 {
	switch d {
	case domain.DifficultyMedium:
		return mediumSeedOffset
	case domain.DifficultyHard:
		return hardSeedOffset
	}
	return easySeedOffset
}

// SeedForDate derives the base seed YYYYMMDD from a date string.
func SeedForDate(date string) (int64, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day()), nil
}

// pseudoRandom maps x to [0,1) as the fractional part of sin(x)*10000.
// Historical selections depend on this exact transform.
func pseudoRandom(x int64) float64 {
	v := math.Sin(float64(x)) * 10000
	return v - math.Floor(v)
}

// SeededShuffle returns a permuted copy of items. The permutation depends only on
// the input order and seed.
func SeededShuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(pseudoRandom(seed+int64(i)) * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
