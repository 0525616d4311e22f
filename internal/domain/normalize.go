package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RawQuestion is a question document as stored in a per-language collection.
// Field names and casing vary between imports.
type RawQuestion map[string]any

var (
	idKeys         = []string{"_id", "id"}
	textKeys       = []string{"question", "text", "prompt"}
	answerKeys     = []string{"answer", "correct answer", "correctanswer", "correct_answer", "correct option"}
	difficultyKeys = []string{"difficulty"}
	categoryKeys   = []string{"category", "subject"}
	optionLetters  = []string{"a", "b", "c", "d"}
)

// Lookup returns the first non-nil value stored under any of keys, matched case-insensitively.
// An exact key wins; among case variants of the same key the lexically smallest wins.
func (r RawQuestion) Lookup(keys ...string) (any, bool) {
	for _, want := range keys {
		if v, ok := r[want]; ok && v != nil {
			return v, true
		}
		var variants []string
		for k, v := range r {
			if v != nil && strings.ToLower(strings.TrimSpace(k)) == want {
				variants = append(variants, k)
			}
		}
		if len(variants) > 0 {
			return r[slices.Min(variants)], true
		}
	}
	return nil, false
}

func (r RawQuestion) str(keys ...string) string {
	v, ok := r.Lookup(keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

// ParseDifficulty maps a stored tag to a tier, case-insensitively.
func ParseDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	}
	return DifficultyUnknown
}

// RawDifficulty returns the stored difficulty tag without normalization.
func (r RawQuestion) RawDifficulty() string {
	return r.str(difficultyKeys...)
}

// NormalizeQuestion maps a raw document to the canonical Question shape.
// Missing options become empty strings, an unmappable answer becomes index 0
// and a missing category becomes DefaultCategory.
func NormalizeQuestion(raw RawQuestion, language string) Question {
	q := Question{
		ID:         raw.str(idKeys...),
		Text:       raw.str(textKeys...),
		Difficulty: ParseDifficulty(raw.RawDifficulty()),
		Category:   strings.TrimSpace(raw.str(categoryKeys...)),
		Language:   language,
	}
	if q.Category == "" {
		q.Category = DefaultCategory
	}

	if arr, ok := raw.Lookup("options"); ok {
		if list, ok := arr.([]any); ok {
			for i := 0; i < OptionCount && i < len(list); i++ {
				q.Options[i] = stringify(list[i])
			}
		}
	}
	for i, letter := range optionLetters {
		if q.Options[i] != "" {
			continue
		}
		q.Options[i] = raw.str("option "+letter, "option"+letter, "option_"+letter, letter)
	}

	q.CorrectOptionIndex = answerIndex(raw.str(answerKeys...))
	return q
}

// answerIndex maps "A".."D", "Option B" or "1".."4" to 0..3.
func answerIndex(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "option")
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if s[0] >= 'a' && s[0] <= 'd' {
			return int(s[0] - 'a')
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= OptionCount {
		return n - 1
	}
	return 0
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
