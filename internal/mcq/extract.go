package mcq

import (
	"regexp"
	"strings"
)

// field tracks which part of the current record the last recognised line
// wrote to. Unrecognised lines are routed by it.
type field int

const (
	fieldNone field = iota
	fieldQuestion
	fieldOptions
	fieldAnswer
	fieldExplanation
)

var (
	questionNumber = regexp.MustCompile(`^\d+\s*[.)]\s*`)
	questionLabel  = regexp.MustCompile(`^[Qq]\d+[:\-]\s*`)

	answerLine      = regexp.MustCompile(`(?i)^(?:Answer|Ans|Correct answer|Correct)\s*[:\-]?\s*(?:is\s+)?(?:option\s+)?\(?([A-D])\b`)
	explanationLine = regexp.MustCompile(`(?i)^(?:Explanation|Reasoning|Reason|Solution)s?\b\s*[:\-]?\s*(.*)$`)
	optionLine      = regexp.MustCompile(`(?i)^([A-D])(?:\s*[).:\-]\s*(.*)|\s+(.*)|([^\pL\s].*))?$`)
)

// lineRule applies a line to the record if it recognises it and reports the
// field it wrote to.
type lineRule func(b *recordBuilder, line string) (field, bool)

// recordRules run in priority order once a record is open. The answer rule
// must come before the option rule: "Answer: A" also starts with a choice
// letter.
var recordRules = []lineRule{
	applyAnswer,
	applyExplanation,
	applyOption,
}

func applyAnswer(b *recordBuilder, line string) (field, bool) {
	m := answerLine.FindStringSubmatch(line)
	if m == nil {
		return fieldNone, false
	}
	b.answer = strings.ToUpper(m[1])
	return fieldAnswer, true
}

func applyExplanation(b *recordBuilder, line string) (field, bool) {
	m := explanationLine.FindStringSubmatch(line)
	if m == nil {
		return fieldNone, false
	}
	b.appendExplanation(m[1])
	return fieldExplanation, true
}

func applyOption(b *recordBuilder, line string) (field, bool) {
	m := optionLine.FindStringSubmatch(line)
	if m == nil {
		return fieldNone, false
	}
	// Only one of the text groups can match.
	b.setOption(strings.ToUpper(m[1]), m[2]+m[3]+m[4])
	return fieldOptions, true
}

func isQuestionStart(line string) bool {
	return questionNumber.MatchString(line) || questionLabel.MatchString(line)
}

func stripQuestionMarker(line string) string {
	line = questionNumber.ReplaceAllString(line, "")
	line = questionLabel.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// extractor is the per-call state of Extract.
type extractor struct {
	out     []Question
	current *recordBuilder
	mode    field
}

// Extract scans generated text line by line and returns the questions it
// could recover, in order. It never fails: lines that match no marker are
// folded into the field being written, and records with fewer than two
// filled options and no answer are dropped as preamble. An empty result
// means no quiz structure was found.
func Extract(text string) []Question {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var x extractor
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		x.feed(line)
	}
	x.flush()
	return x.out
}

func (x *extractor) feed(line string) {
	if isQuestionStart(line) {
		x.flush()
		x.current = newRecordBuilder(stripQuestionMarker(line))
		x.mode = fieldQuestion
		return
	}

	// Malformed first line: treat it as question text.
	if x.current == nil {
		x.current = newRecordBuilder(line)
		x.mode = fieldQuestion
		return
	}

	for _, rule := range recordRules {
		if f, ok := rule(x.current, line); ok {
			x.mode = f
			return
		}
	}

	x.continueField(line)
}

func (x *extractor) continueField(line string) {
	switch x.mode {
	case fieldOptions:
		if !x.current.appendToLastOption(line) {
			x.current.appendQuestion(line)
		}
	case fieldExplanation:
		x.current.appendExplanation(line)
	default:
		x.current.appendQuestion(line)
	}
}

func (x *extractor) flush() {
	if x.current == nil {
		return
	}
	if x.current.keep() {
		x.out = append(x.out, x.current.build())
	}
	x.current = nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
