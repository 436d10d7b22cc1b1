package llm

import (
	"fmt"

	"portagees/backend/internal/model"
)

// tutorSystemPrompt anchors general conversation to Portuguese learning.
// Off-topic messages are redirected here rather than rejected.
const tutorSystemPrompt = "You are a friendly Portuguese language tutor. " +
	"Answer questions about Portuguese vocabulary, grammar and culture in clear, " +
	"encouraging English, using Portuguese examples where helpful. If the user " +
	"strays from language learning, gently steer the conversation back to Portuguese."

const questionSystemPrompt = "You are a Portuguese language expert who writes practice questions. " +
	"Respond with JSON only, no prose and no markdown fences."

func questionBatchPrompt(topic string, difficulty model.Difficulty, count int, questionType model.QuestionType) string {
	if questionType == model.QuestionTypeMultipleChoice {
		return fmt.Sprintf(`Create %d unique Portuguese multiple choice questions about '%s' at %s difficulty.
Each question must be distinct from the others. Respond with a JSON array where every element has these keys:
- questionText: the full question text
- questionDescription: a brief instruction
- options: a list of 4 options
- correct_answers: a list containing exactly the correct option string
- hint: a subtle hint

Example element:
{"questionText": "What is the correct article for the Portuguese word 'casa'?", "questionDescription": "Choose the correct definite article.", "options": ["a", "o", "as", "os"], "correct_answers": ["a"], "hint": "Most words ending in 'a' are feminine."}`,
			count, topic, difficulty)
	}

	return fmt.Sprintf(`Create %d unique Portuguese fill-in-the-blank questions about '%s' at %s difficulty.
Each question must be distinct from the others. Respond with a JSON array where every element has these keys:
- questionText: the full question text
- questionDescription: a brief instruction
- questionSentence: a Portuguese sentence using %s for the blank
- correct_answers: a list containing the word for each blank, in order
- hint: a subtle hint

Example element:
{"questionText": "Complete the sentence with the correct verb form:", "questionDescription": "Fill in the blank with the correct conjugation of 'falar'.", "questionSentence": "Eu %s português todos os dias.", "correct_answers": ["falo"], "hint": "First person singular, present tense."}`,
		count, topic, difficulty, model.BlankMarker, model.BlankMarker)
}

func strictRetryPrompt(topic string, count int, questionType model.QuestionType) string {
	if questionType == model.QuestionTypeMultipleChoice {
		return fmt.Sprintf(`Return ONLY a JSON array of %d objects about '%s', each with this exact structure:
{"questionText": "A Portuguese question?", "questionDescription": "Choose the correct option.", "options": ["option1", "option2", "option3", "option4"], "correct_answers": ["option1"], "hint": "A hint."}`, count, topic)
	}
	return fmt.Sprintf(`Return ONLY a JSON array of %d objects about '%s', each with this exact structure:
{"questionText": "Fill in the blank:", "questionDescription": "Complete the sentence.", "questionSentence": "Portuguese sentence with %s for the blank.", "correct_answers": ["answer"], "hint": "A hint."}`, count, topic, model.BlankMarker)
}
