package mcq

import (
	"sort"
	"strings"
	"unicode"
)

// OptionKeys are the choice labels every emitted question carries.
var OptionKeys = []string{"A", "B", "C", "D"}

// Question is one multiple-choice question recovered from generated text.
type Question struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

// NoiseMarkers are phrases that show up when the model leaks reasoning or
// self-correction into an option line. Matching is case-sensitive.
var NoiseMarkers = []string{
	"Explanation:",
	"This is simple",
	"This is straightforward",
	"Wait,",
	"Wait ",
	"Let me",
	"So option",
	"Hence option",
	"Therefore option",
	"is correct",
	"Correct answer is",
}

const explanationLabel = "explanation:"

func isOptionKey(s string) bool {
	switch s {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// joinField appends extra to field with exactly one separating space.
func joinField(field, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return field
	}
	field = strings.TrimRightFunc(field, unicode.IsSpace)
	if field == "" {
		return extra
	}
	return field + " " + extra
}

// recordBuilder accumulates one question while the extractor walks the lines.
// It is owned by a single Extract call and moved into the output on flush.
type recordBuilder struct {
	question    string
	options     map[string]string
	answer      string
	explanation string
}

func newRecordBuilder(question string) *recordBuilder {
	return &recordBuilder{
		question: strings.TrimSpace(question),
		options:  make(map[string]string, len(OptionKeys)),
	}
}

func (b *recordBuilder) appendQuestion(s string) {
	b.question = joinField(b.question, s)
}

func (b *recordBuilder) appendExplanation(s string) {
	b.explanation = joinField(b.explanation, s)
}

func (b *recordBuilder) setOption(key, text string) {
	b.options[key] = b.salvageOption(text)
}

// appendToLastOption extends the option with the highest key seen so far.
// It reports false when no option exists yet.
func (b *recordBuilder) appendToLastOption(text string) bool {
	if len(b.options) == 0 {
		return false
	}
	keys := make([]string, 0, len(b.options))
	for k := range b.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	last := keys[len(keys)-1]
	b.options[last] = joinField(b.options[last], b.salvageOption(text))
	return true
}

// salvageOption cuts option text at the earliest noise marker. The tail is
// moved into the explanation, minus a leading "Explanation:" label.
func (b *recordBuilder) salvageOption(text string) string {
	text = strings.TrimSpace(text)
	cut := -1
	for _, marker := range NoiseMarkers {
		if idx := strings.Index(text, marker); idx != -1 && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut == -1 {
		return text
	}

	option := strings.TrimSpace(text[:cut])
	tail := strings.TrimSpace(text[cut:])
	if len(tail) >= len(explanationLabel) && strings.EqualFold(tail[:len(explanationLabel)], explanationLabel) {
		tail = strings.TrimSpace(tail[len(explanationLabel):])
	}
	b.appendExplanation(tail)
	return option
}

// keep reports whether the record looks like a real question rather than an
// intro or heading line.
func (b *recordBuilder) keep() bool {
	filled := 0
	for _, v := range b.options {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return filled >= 2 || isOptionKey(strings.TrimSpace(b.answer))
}

func (b *recordBuilder) build() Question {
	options := make(map[string]string, len(OptionKeys))
	for _, k := range OptionKeys {
		options[k] = strings.TrimSpace(b.options[k])
	}
	return Question{
		Question:    strings.TrimSpace(b.question),
		Options:     options,
		Answer:      strings.TrimSpace(b.answer),
		Explanation: strings.TrimSpace(b.explanation),
	}
}
