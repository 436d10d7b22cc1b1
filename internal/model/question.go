package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionType discriminates the two question variants on the wire.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MultipleChoice"
	QuestionTypeFillInTheBlank QuestionType = "FillInTheBlanks"
)

// BlankMarker is the literal used for blanks in fill-in-the-blank sentences.
const BlankMarker = "____"

// Question is one practice question attached to an AI message. The two
// implementations form a tagged union discriminated by the "type" field;
// their invariants are enforced by the constructors, so a Question that
// exists is always well-formed.
type Question interface {
	QuestionID() string
	Kind() QuestionType
	// DedupKey returns the text that determines uniqueness within one
	// generation batch: the prompt text for multiple choice, the rendered
	// sentence for fill-in-the-blank.
	DedupKey() string
}

// MultipleChoiceQuestion asks the learner to pick from a fixed option set.
type MultipleChoiceQuestion struct {
	ID                  string       `json:"id"`
	Type                QuestionType `json:"type"`
	QuestionText        string       `json:"questionText"`
	QuestionDescription string       `json:"questionDescription"`
	Options             []string     `json:"options"`
	CorrectAnswers      []string     `json:"correct_answers"`
	Difficulty          Difficulty   `json:"difficulty"`
	Hint                string       `json:"hint,omitempty"`
}

// NewMultipleChoice validates and builds a multiple-choice question.
// Every correct answer must appear in the option set, and there must be
// at least two options.
func NewMultipleChoice(id, text, description string, options, correctAnswers []string, difficulty Difficulty, hint string) (*MultipleChoiceQuestion, error) {
	if text == "" {
		return nil, fmt.Errorf("multiple choice: empty question text")
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("multiple choice: need at least 2 options, got %d", len(options))
	}
	if len(correctAnswers) == 0 {
		return nil, fmt.Errorf("multiple choice: no correct answers")
	}
	for _, answer := range correctAnswers {
		if !containsString(options, answer) {
			return nil, fmt.Errorf("multiple choice: correct answer %q not among options", answer)
		}
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("multiple choice: invalid difficulty %q", difficulty)
	}
	return &MultipleChoiceQuestion{
		ID:                  id,
		Type:                QuestionTypeMultipleChoice,
		QuestionText:        text,
		QuestionDescription: description,
		Options:             options,
		CorrectAnswers:      correctAnswers,
		Difficulty:          difficulty,
		Hint:                hint,
	}, nil
}

func (q *MultipleChoiceQuestion) QuestionID() string { return q.ID }
func (q *MultipleChoiceQuestion) Kind() QuestionType { return QuestionTypeMultipleChoice }
func (q *MultipleChoiceQuestion) DedupKey() string   { return normalizeKey(q.QuestionText) }

// FillInTheBlankQuestion asks the learner to complete a sentence whose
// blanks are marked with BlankMarker.
type FillInTheBlankQuestion struct {
	ID                  string       `json:"id"`
	Type                QuestionType `json:"type"`
	QuestionText        string       `json:"questionText"`
	QuestionDescription string       `json:"questionDescription"`
	QuestionSentence    string       `json:"questionSentence"`
	BlankSeparator      string       `json:"blankSeparator"`
	NumberOfBlanks      int          `json:"numberOfBlanks"`
	CorrectAnswers      []string     `json:"correct_answers"`
	Difficulty          Difficulty   `json:"difficulty"`
	Hint                string       `json:"hint,omitempty"`
}

// NewFillInTheBlank validates and builds a fill-in-the-blank question.
// The number of blank markers in the sentence must equal the number of
// correct answers; the blank count is derived from the sentence.
func NewFillInTheBlank(id, text, description, sentence string, correctAnswers []string, difficulty Difficulty, hint string) (*FillInTheBlankQuestion, error) {
	if text == "" {
		return nil, fmt.Errorf("fill in the blank: empty question text")
	}
	blanks := strings.Count(sentence, BlankMarker)
	if blanks == 0 {
		return nil, fmt.Errorf("fill in the blank: sentence %q contains no blank marker", sentence)
	}
	if len(correctAnswers) != blanks {
		return nil, fmt.Errorf("fill in the blank: %d blanks but %d answers", blanks, len(correctAnswers))
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("fill in the blank: invalid difficulty %q", difficulty)
	}
	return &FillInTheBlankQuestion{
		ID:                  id,
		Type:                QuestionTypeFillInTheBlank,
		QuestionText:        text,
		QuestionDescription: description,
		QuestionSentence:    sentence,
		BlankSeparator:      BlankMarker,
		NumberOfBlanks:      blanks,
		CorrectAnswers:      correctAnswers,
		Difficulty:          difficulty,
		Hint:                hint,
	}, nil
}

func (q *FillInTheBlankQuestion) QuestionID() string { return q.ID }
func (q *FillInTheBlankQuestion) Kind() QuestionType { return QuestionTypeFillInTheBlank }
func (q *FillInTheBlankQuestion) DedupKey() string   { return normalizeKey(q.QuestionSentence) }

// QuestionList is a heterogeneous question slice that knows how to decode
// itself by dispatching on each element's "type" tag.
type QuestionList []Question

func (l *QuestionList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(QuestionList, 0, len(raws))
	for _, raw := range raws {
		var tag struct {
			Type QuestionType `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		switch tag.Type {
		case QuestionTypeMultipleChoice:
			var q MultipleChoiceQuestion
			if err := json.Unmarshal(raw, &q); err != nil {
				return err
			}
			out = append(out, &q)
		case QuestionTypeFillInTheBlank:
			var q FillInTheBlankQuestion
			if err := json.Unmarshal(raw, &q); err != nil {
				return err
			}
			out = append(out, &q)
		default:
			return fmt.Errorf("unknown question type %q", tag.Type)
		}
	}
	*l = out
	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// normalizeKey folds case and whitespace so near-identical prompts collide.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
