package service

import (
	"fmt"

	"portagees/backend/internal/llm"
	"portagees/backend/internal/model"
)

// NormalizeQuestions coerces raw question candidates into well-formed
// questions of the requested type. Primary candidates (usually from the
// model gateway) are considered first, then fallback candidates, until
// count items are accepted or both sources are exhausted.
//
// Guarantees: never more than count items; every item satisfies its
// variant's shape invariants; no two items share a dedup key; identifiers
// are sequential and unique within the batch. Malformed candidates are
// dropped silently and count against the shortfall.
func NormalizeQuestions(primary, fallback []llm.RawQuestion, questionType model.QuestionType, difficulty model.Difficulty, count int) model.QuestionList {
	if count <= 0 {
		return model.QuestionList{}
	}
	if !difficulty.IsValid() {
		difficulty = model.DifficultyMedium
	}

	accepted := make(model.QuestionList, 0, count)
	seen := make(map[string]struct{}, count)

	consume := func(candidates []llm.RawQuestion) {
		for _, raw := range candidates {
			if len(accepted) == count {
				return
			}
			id := fmt.Sprintf("q%d", len(accepted)+1)
			question, err := buildQuestion(raw, questionType, difficulty, id)
			if err != nil {
				continue
			}
			key := question.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			accepted = append(accepted, question)
		}
	}

	consume(primary)
	consume(fallback)
	return accepted
}

// buildQuestion runs a raw candidate through the variant constructor, which
// enforces the shape invariants. Multiple-choice candidates missing their
// correct answer among the options are repaired by appending it, mirroring
// models that list the answer separately from the distractors.
func buildQuestion(raw llm.RawQuestion, questionType model.QuestionType, difficulty model.Difficulty, id string) (model.Question, error) {
	switch questionType {
	case model.QuestionTypeMultipleChoice:
		options := raw.Options
		for _, answer := range raw.CorrectAnswers {
			if answer != "" && !optionListed(options, answer) {
				options = append(options, answer)
			}
		}
		return model.NewMultipleChoice(id, raw.QuestionText, raw.QuestionDescription, options, raw.CorrectAnswers, difficulty, raw.Hint)
	case model.QuestionTypeFillInTheBlank:
		return model.NewFillInTheBlank(id, raw.QuestionText, raw.QuestionDescription, raw.QuestionSentence, raw.CorrectAnswers, difficulty, raw.Hint)
	default:
		return nil, fmt.Errorf("unknown question type %q", questionType)
	}
}

func optionListed(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
