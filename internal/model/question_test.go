package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portagees/backend/internal/model"
)

func TestNewMultipleChoice(t *testing.T) {
	options := []string{"o gato", "o cão", "o pássaro"}

	t.Run("Success", func(t *testing.T) {
		q, err := model.NewMultipleChoice("q1", "How do you say 'the cat'?", "Pick the right noun.", options, []string{"o gato"}, model.DifficultyEasy, "It purrs.")
		require.NoError(t, err)
		assert.Equal(t, "q1", q.QuestionID())
		assert.Equal(t, model.QuestionTypeMultipleChoice, q.Kind())
		assert.Equal(t, model.QuestionTypeMultipleChoice, q.Type)
	})

	t.Run("Failure - empty question text", func(t *testing.T) {
		_, err := model.NewMultipleChoice("q1", "", "", options, []string{"o gato"}, model.DifficultyEasy, "")
		assert.Error(t, err)
	})

	t.Run("Failure - fewer than two options", func(t *testing.T) {
		_, err := model.NewMultipleChoice("q1", "Pick one", "", []string{"o gato"}, []string{"o gato"}, model.DifficultyEasy, "")
		assert.Error(t, err)
	})

	t.Run("Failure - no correct answers", func(t *testing.T) {
		_, err := model.NewMultipleChoice("q1", "Pick one", "", options, nil, model.DifficultyEasy, "")
		assert.Error(t, err)
	})

	t.Run("Failure - correct answer not among options", func(t *testing.T) {
		_, err := model.NewMultipleChoice("q1", "Pick one", "", options, []string{"o peixe"}, model.DifficultyEasy, "")
		assert.Error(t, err)
	})

	t.Run("Failure - invalid difficulty", func(t *testing.T) {
		_, err := model.NewMultipleChoice("q1", "Pick one", "", options, []string{"o gato"}, model.Difficulty("brutal"), "")
		assert.Error(t, err)
	})
}

func TestNewFillInTheBlank(t *testing.T) {
	t.Run("Success - blank count derived from sentence", func(t *testing.T) {
		q, err := model.NewFillInTheBlank("q2", "Complete the sentence", "", "Eu ____ ao mercado e ____ pão.", []string{"fui", "comprei"}, model.DifficultyMedium, "")
		require.NoError(t, err)
		assert.Equal(t, 2, q.NumberOfBlanks)
		assert.Equal(t, model.BlankMarker, q.BlankSeparator)
		assert.Equal(t, model.QuestionTypeFillInTheBlank, q.Kind())
	})

	t.Run("Failure - no blank marker", func(t *testing.T) {
		_, err := model.NewFillInTheBlank("q2", "Complete", "", "Eu fui ao mercado.", []string{"fui"}, model.DifficultyMedium, "")
		assert.Error(t, err)
	})

	t.Run("Failure - blank and answer counts differ", func(t *testing.T) {
		_, err := model.NewFillInTheBlank("q2", "Complete", "", "Eu ____ ao mercado.", []string{"fui", "comprei"}, model.DifficultyMedium, "")
		assert.Error(t, err)
	})

	t.Run("Failure - empty question text", func(t *testing.T) {
		_, err := model.NewFillInTheBlank("q2", "", "", "Eu ____ ao mercado.", []string{"fui"}, model.DifficultyMedium, "")
		assert.Error(t, err)
	})
}

func TestQuestionList_UnmarshalJSON(t *testing.T) {
	t.Run("Decodes mixed variants by type tag", func(t *testing.T) {
		data := `[
			{"id":"q1","type":"MultipleChoice","questionText":"Pick the noun","questionDescription":"","options":["a casa","correr"],"correct_answers":["a casa"],"difficulty":"easy"},
			{"id":"q2","type":"FillInTheBlanks","questionText":"Complete","questionDescription":"","questionSentence":"Ela ____ feliz.","blankSeparator":"____","numberOfBlanks":1,"correct_answers":["está"],"difficulty":"medium"}
		]`

		var list model.QuestionList
		require.NoError(t, json.Unmarshal([]byte(data), &list))
		require.Len(t, list, 2)

		mcq, ok := list[0].(*model.MultipleChoiceQuestion)
		require.True(t, ok)
		assert.Equal(t, "q1", mcq.ID)

		fitb, ok := list[1].(*model.FillInTheBlankQuestion)
		require.True(t, ok)
		assert.Equal(t, []string{"está"}, fitb.CorrectAnswers)
	})

	t.Run("Round trip preserves variants", func(t *testing.T) {
		mcq, err := model.NewMultipleChoice("q1", "Pick the noun", "", []string{"a casa", "correr"}, []string{"a casa"}, model.DifficultyEasy, "")
		require.NoError(t, err)
		original := model.QuestionList{mcq}

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded model.QuestionList
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, mcq, decoded[0])
	})

	t.Run("Failure - unknown type tag", func(t *testing.T) {
		var list model.QuestionList
		err := json.Unmarshal([]byte(`[{"id":"q1","type":"Essay"}]`), &list)
		assert.Error(t, err)
	})
}

func TestDedupKey(t *testing.T) {
	a, err := model.NewMultipleChoice("q1", "How do you say  'the cat'?", "", []string{"o gato", "o cão"}, []string{"o gato"}, model.DifficultyEasy, "")
	require.NoError(t, err)
	b, err := model.NewMultipleChoice("q2", "how do you say 'the cat'?", "", []string{"o gato", "o cão"}, []string{"o gato"}, model.DifficultyEasy, "")
	require.NoError(t, err)

	// Case and whitespace differences collapse to the same key.
	assert.Equal(t, a.DedupKey(), b.DedupKey())
}
