package service

import (
	"regexp"
	"strconv"
	"strings"

	"portagees/backend/internal/model"
)

// IntentKind is the classified purpose of an inbound user message.
type IntentKind string

const (
	IntentGeneralChat     IntentKind = "general_chat"
	IntentQuestionRequest IntentKind = "question_generation"
)

// Intent is the classifier's verdict. For question requests it also
// carries the resolved question type, topic and count.
type Intent struct {
	Kind         IntentKind
	Topic        string
	QuestionType model.QuestionType
	Count        int
}

// Count bounds for question requests.
const (
	DefaultQuestionCount = 2
	MinQuestionCount     = 1
	MaxQuestionCount     = 10
)

// Trigger phrases that mark a message as a practice-question request,
// and the cues that select the question type.
var (
	questionTriggers   = []string{"question", "practice", "quiz", "test me", "exercise"}
	multipleChoiceCues = []string{"multiple choice", "options", "choose"}
	fillInTheBlankCues = []string{"fill in the blank", "blank", "complete the sentence"}

	countPattern = regexp.MustCompile(`\b(\d{1,3})\b`)

	countWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	}
)

// IntentClassifier decides whether a message asks for general conversation
// or practice questions. Classification is a pure keyword heuristic: same
// inputs always yield the same Intent, and there is no failure path — any
// absence of signal resolves to a default.
type IntentClassifier struct {
	// DefaultTopic is used when neither the caller nor the message supplies
	// a topic.
	DefaultTopic string
}

// Classify inspects the message together with the caller's explicit topic
// and count fields (zero values mean "not supplied").
func (c IntentClassifier) Classify(message, explicitTopic string, explicitCount int) Intent {
	lower := strings.ToLower(message)
	topic := c.resolveTopic(message, explicitTopic)

	if !containsAny(lower, questionTriggers) {
		return Intent{Kind: IntentGeneralChat, Topic: topic}
	}

	questionType := model.QuestionTypeFillInTheBlank
	switch {
	case containsAny(lower, multipleChoiceCues):
		questionType = model.QuestionTypeMultipleChoice
	case containsAny(lower, fillInTheBlankCues):
		questionType = model.QuestionTypeFillInTheBlank
	}

	return Intent{
		Kind:         IntentQuestionRequest,
		Topic:        topic,
		QuestionType: questionType,
		Count:        resolveCount(lower, explicitCount),
	}
}

func (c IntentClassifier) resolveTopic(message, explicitTopic string) string {
	if t := strings.TrimSpace(explicitTopic); t != "" {
		return t
	}
	if t := strings.TrimSpace(message); t != "" {
		return t
	}
	return c.DefaultTopic
}

// resolveCount picks the requested question count: the explicit field wins,
// then a number mentioned in the text, then the default. The result is
// always clamped to [MinQuestionCount, MaxQuestionCount].
func resolveCount(lowerMessage string, explicitCount int) int {
	if explicitCount > 0 {
		return clampCount(explicitCount)
	}
	if m := countPattern.FindString(lowerMessage); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return clampCount(n)
		}
	}
	// Scan words left to right so the first mentioned number wins,
	// keeping classification deterministic.
	for _, field := range wordsOf(lowerMessage) {
		if n, ok := countWords[field]; ok {
			return clampCount(n)
		}
	}
	return DefaultQuestionCount
}

func clampCount(n int) int {
	if n < MinQuestionCount {
		return MinQuestionCount
	}
	if n > MaxQuestionCount {
		return MaxQuestionCount
	}
	return n
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// wordsOf splits on anything that is not a lowercase letter or digit, so
// number words match whole words only ("one" does not fire on "phone").
func wordsOf(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
