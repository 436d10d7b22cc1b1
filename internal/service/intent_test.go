package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portagees/backend/internal/model"
	"portagees/backend/internal/service"
)

func newClassifier() service.IntentClassifier {
	return service.IntentClassifier{DefaultTopic: "Portuguese language"}
}

func TestIntentClassifier_Classify(t *testing.T) {
	c := newClassifier()

	t.Run("Plain chat message is general chat", func(t *testing.T) {
		intent := c.Classify("Olá! How do I order coffee in Lisbon?", "", 0)
		assert.Equal(t, service.IntentGeneralChat, intent.Kind)
	})

	t.Run("Trigger word marks a question request", func(t *testing.T) {
		intent := c.Classify("Give me some practice questions about verbs", "", 0)
		assert.Equal(t, service.IntentQuestionRequest, intent.Kind)
	})

	t.Run("Each trigger phrase fires", func(t *testing.T) {
		for _, message := range []string{
			"a question please",
			"I want to practice",
			"quiz time",
			"test me on food words",
			"one more exercise",
		} {
			intent := c.Classify(message, "", 0)
			assert.Equal(t, service.IntentQuestionRequest, intent.Kind, "message: %s", message)
		}
	})

	t.Run("Multiple choice cue selects the variant", func(t *testing.T) {
		intent := c.Classify("quiz me with multiple choice", "", 0)
		assert.Equal(t, model.QuestionTypeMultipleChoice, intent.QuestionType)
	})

	t.Run("Fill in the blank is the default variant", func(t *testing.T) {
		intent := c.Classify("give me a quiz about animals", "", 0)
		assert.Equal(t, model.QuestionTypeFillInTheBlank, intent.QuestionType)
	})

	t.Run("Classification is case insensitive", func(t *testing.T) {
		intent := c.Classify("QUIZ me with MULTIPLE CHOICE", "", 0)
		assert.Equal(t, service.IntentQuestionRequest, intent.Kind)
		assert.Equal(t, model.QuestionTypeMultipleChoice, intent.QuestionType)
	})

	t.Run("Same input always yields the same intent", func(t *testing.T) {
		first := c.Classify("give me three or five questions", "", 0)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, c.Classify("give me three or five questions", "", 0))
		}
	})
}

func TestIntentClassifier_Topic(t *testing.T) {
	c := newClassifier()

	t.Run("Explicit topic wins over message text", func(t *testing.T) {
		intent := c.Classify("quiz me", "irregular verbs", 0)
		assert.Equal(t, "irregular verbs", intent.Topic)
	})

	t.Run("Message text used when no explicit topic", func(t *testing.T) {
		intent := c.Classify("quiz me on food", "", 0)
		assert.Equal(t, "quiz me on food", intent.Topic)
	})

	t.Run("Default topic when both are blank", func(t *testing.T) {
		intent := c.Classify("   ", "  ", 0)
		assert.Equal(t, "Portuguese language", intent.Topic)
	})
}

func TestIntentClassifier_Count(t *testing.T) {
	c := newClassifier()

	t.Run("Default count when none requested", func(t *testing.T) {
		intent := c.Classify("quiz me", "", 0)
		assert.Equal(t, service.DefaultQuestionCount, intent.Count)
	})

	t.Run("Explicit field wins over text", func(t *testing.T) {
		intent := c.Classify("give me 7 questions", "", 3)
		assert.Equal(t, 3, intent.Count)
	})

	t.Run("Digit in text", func(t *testing.T) {
		intent := c.Classify("give me 4 questions", "", 0)
		assert.Equal(t, 4, intent.Count)
	})

	t.Run("Number word in text", func(t *testing.T) {
		intent := c.Classify("give me five questions", "", 0)
		assert.Equal(t, 5, intent.Count)
	})

	t.Run("First number word wins", func(t *testing.T) {
		intent := c.Classify("give me three questions, not ten", "", 0)
		assert.Equal(t, 3, intent.Count)
	})

	t.Run("Number word does not fire inside another word", func(t *testing.T) {
		// "phone" contains "one"; it must not be read as a count.
		intent := c.Classify("quiz me about words for phone", "", 0)
		assert.Equal(t, service.DefaultQuestionCount, intent.Count)
	})

	t.Run("Counts clamp to the allowed range", func(t *testing.T) {
		assert.Equal(t, service.MaxQuestionCount, c.Classify("give me 50 questions", "", 0).Count)
		assert.Equal(t, service.MinQuestionCount, c.Classify("give me 0 questions", "", 0).Count)
		assert.Equal(t, service.MaxQuestionCount, c.Classify("quiz me", "", 99).Count)
	})
}
