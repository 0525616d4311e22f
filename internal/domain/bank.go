package domain

import (
	"encoding/json"
	"fmt"
	"io"
)

// QuestionBank maps a language to its raw question documents.
type QuestionBank map[string][]RawQuestion

// DecodeQuestionBank reads a JSON object of the form {"english": [{...}, ...], ...}.
// Unsupported languages are rejected.
func DecodeQuestionBank(r io.Reader) (QuestionBank, error) {
	var bank QuestionBank
	if err := json.NewDecoder(r).Decode(&bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	for lang := range bank {
		if !IsSupportedLanguage(lang) {
			return nil, fmt.Errorf("decode question bank: unsupported language %q", lang)
		}
	}
	return bank, nil
}
