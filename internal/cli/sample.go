package cli

import (
	"fmt"

	"olympiad-quiz-service/internal/domain"
)

type sampleQuestion struct {
	text       string
	options    [domain.OptionCount]string
	answer     string
	difficulty string
	category   string
}

// sampleBank provides a small English bank for running without Postgres or a questions file.
func sampleBank() domain.QuestionBank {
	items := []sampleQuestion{
		{"What is 7 x 8?", [4]string{"54", "56", "58", "64"}, "B", "Easy", "Mathematics"},
		{"Which planet is known as the Red Planet?", [4]string{"Venus", "Jupiter", "Mars", "Saturn"}, "C", "Easy", "Science"},
		{"How many sides does a hexagon have?", [4]string{"5", "6", "7", "8"}, "B", "Easy", "Mathematics"},
		{"Which gas do plants absorb from the air?", [4]string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, "C", "Easy", "Science"},
		{"What is the capital of India?", [4]string{"Mumbai", "New Delhi", "Kolkata", "Chennai"}, "B", "Easy", "General Knowledge"},
		{"What is 15% of 200?", [4]string{"15", "20", "30", "45"}, "C", "Medium", "Mathematics"},
		{"Which organ produces insulin?", [4]string{"Liver", "Pancreas", "Kidney", "Heart"}, "B", "Medium", "Science"},
		{"What is the chemical symbol for sodium?", [4]string{"So", "Sd", "Na", "S"}, "C", "Medium", "Science"},
		{"Which is the longest river in India?", [4]string{"Yamuna", "Godavari", "Ganga", "Narmada"}, "C", "Medium", "General Knowledge"},
		{"What is the next prime after 13?", [4]string{"15", "17", "19", "21"}, "B", "Medium", "Mathematics"},
		{"What is the derivative of x^3?", [4]string{"x^2", "3x", "3x^2", "3x^3"}, "C", "Hard", "Mathematics"},
		{"Which particle has no electric charge?", [4]string{"Proton", "Electron", "Neutron", "Positron"}, "C", "Hard", "Science"},
		{"What is the sum of interior angles of a pentagon?", [4]string{"360", "480", "540", "720"}, "C", "Hard", "Mathematics"},
		{"Who wrote the Indian national anthem?", [4]string{"Bankim Chandra Chatterjee", "Rabindranath Tagore", "Sarojini Naidu", "Muhammad Iqbal"}, "B", "Hard", "General Knowledge"},
		{"What is the SI unit of electric resistance?", [4]string{"Volt", "Ampere", "Ohm", "Watt"}, "C", "Hard", "Science"},
	}

	raws := make([]domain.RawQuestion, 0, len(items))
	for i, it := range items {
		raws = append(raws, domain.RawQuestion{
			"_id":            fmt.Sprintf("sample-%02d", i+1),
			"Question":       it.text,
			"Option A":       it.options[0],
			"Option B":       it.options[1],
			"Option C":       it.options[2],
			"Option D":       it.options[3],
			"Correct Answer": it.answer,
			"Difficulty":     it.difficulty,
			"Category":       it.category,
		})
	}
	return domain.QuestionBank{domain.BaseLanguage: raws}
}
