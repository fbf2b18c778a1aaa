package mcq

import "strings"

// Stats summarises structural gaps in extracted questions.
type Stats struct {
	Total           int
	MissingAnswer   []int // 1-based question numbers
	AnswerNoOption  []int // answer letter points at an empty option
	MissingOptions  []int // fewer than four filled options
	WithExplanation int
}

// ComputeStats inspects extracted questions without modifying them.
func ComputeStats(questions []Question) Stats {
	s := Stats{Total: len(questions)}
	for i, q := range questions {
		n := i + 1
		if q.Answer == "" {
			s.MissingAnswer = append(s.MissingAnswer, n)
		} else if strings.TrimSpace(q.Options[q.Answer]) == "" {
			s.AnswerNoOption = append(s.AnswerNoOption, n)
		}

		filled := 0
		for _, k := range OptionKeys {
			if strings.TrimSpace(q.Options[k]) != "" {
				filled++
			}
		}
		if filled < len(OptionKeys) {
			s.MissingOptions = append(s.MissingOptions, n)
		}

		if q.Explanation != "" {
			s.WithExplanation++
		}
	}
	return s
}
