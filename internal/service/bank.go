package service

import (
	"context"
	"math/rand"
	"strings"

	"portagees/backend/internal/llm"
	"portagees/backend/internal/model"
)

// QuestionSource is the generate-questions capability shared by the
// language-model gateway and the fallback bank, so the pipeline can swap
// one for the other when the gateway cannot deliver.
type QuestionSource interface {
	GenerateQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int, questionType model.QuestionType) ([]llm.RawQuestion, error)
}

// QuestionBank is a fixed pool of pre-authored questions, keyed loosely by
// topic keyword with a topic-agnostic pool as the final fallback. Sampling
// never fails; an exhausted pool simply yields fewer items.
type QuestionBank struct {
	pools   []bankPool
	generic bankPool
}

type bankPool struct {
	keywords       []string
	multipleChoice []llm.RawQuestion
	fillInTheBlank []llm.RawQuestion
}

// GenerateQuestions satisfies QuestionSource. The error is always nil.
func (b *QuestionBank) GenerateQuestions(_ context.Context, topic string, _ model.Difficulty, count int, questionType model.QuestionType) ([]llm.RawQuestion, error) {
	return b.Sample(topic, questionType, count), nil
}

// Sample returns up to count raw questions of the requested type,
// preferring the pool whose keyword matches the topic and topping up from
// the generic pool. Multiple-choice option order is shuffled per sample.
func (b *QuestionBank) Sample(topic string, questionType model.QuestionType, count int) []llm.RawQuestion {
	if count <= 0 {
		return nil
	}

	lower := strings.ToLower(topic)
	var candidates []llm.RawQuestion
	for _, pool := range b.pools {
		if pool.matches(lower) {
			candidates = append(candidates, pool.byType(questionType)...)
			break
		}
	}
	candidates = append(candidates, b.generic.byType(questionType)...)

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	out := make([]llm.RawQuestion, len(candidates))
	for i, raw := range candidates {
		out[i] = raw
		if questionType == model.QuestionTypeMultipleChoice {
			options := make([]string, len(raw.Options))
			copy(options, raw.Options)
			rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
			out[i].Options = options
		}
	}
	return out
}

func (p bankPool) matches(lowerTopic string) bool {
	for _, keyword := range p.keywords {
		if strings.Contains(lowerTopic, keyword) {
			return true
		}
	}
	return false
}

func (p bankPool) byType(questionType model.QuestionType) []llm.RawQuestion {
	if questionType == model.QuestionTypeMultipleChoice {
		return p.multipleChoice
	}
	return p.fillInTheBlank
}

// NewQuestionBank builds the curated pool set.
func NewQuestionBank() *QuestionBank {
	return &QuestionBank{
		pools: []bankPool{
			{
				keywords: []string{"greeting", "hello", "polite"},
				multipleChoice: []llm.RawQuestion{
					{
						QuestionText:        "What is the Portuguese word for 'hello'?",
						QuestionDescription: "Choose the correct translation.",
						Options:             []string{"Olá", "Adeus", "Bom dia", "Obrigado"},
						CorrectAnswers:      []string{"Olá"},
						Hint:                "This is the most common Portuguese greeting.",
					},
					{
						QuestionText:        "What is the Portuguese word for 'goodbye'?",
						QuestionDescription: "Choose the correct translation.",
						Options:             []string{"Adeus", "Olá", "Até logo", "Bom dia"},
						CorrectAnswers:      []string{"Adeus"},
						Hint:                "Said when parting for a long time.",
					},
					{
						QuestionText:        "What is the Portuguese word for 'thank you', said by a man?",
						QuestionDescription: "Choose the correct polite expression.",
						Options:             []string{"Obrigado", "Por favor", "De nada", "Sim"},
						CorrectAnswers:      []string{"Obrigado"},
						Hint:                "The ending agrees with the speaker's gender.",
					},
				},
				fillInTheBlank: []llm.RawQuestion{
					{
						QuestionText:        "Complete the greeting:",
						QuestionDescription: "Fill in the blank with the appropriate Portuguese greeting.",
						QuestionSentence:    "____, tudo bem?",
						CorrectAnswers:      []string{"Olá"},
						Hint:                "The standard way to say hello.",
					},
					{
						QuestionText:        "Complete the sentence with the correct polite word:",
						QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
						QuestionSentence:    "Um café, ____.",
						CorrectAnswers:      []string{"por favor"},
						Hint:                "Used when asking for something politely.",
					},
				},
			},
			{
				keywords: []string{"noun", "article", "gender"},
				multipleChoice: []llm.RawQuestion{
					{
						QuestionText:        "Which Portuguese noun is feminine?",
						QuestionDescription: "Select the noun that is feminine in Portuguese.",
						Options:             []string{"casa (house)", "livro (book)", "carro (car)", "telefone (telephone)"},
						CorrectAnswers:      []string{"casa (house)"},
						Hint:                "Nouns ending in 'a' are typically feminine in Portuguese.",
					},
					{
						QuestionText:        "What is the correct article to use with the Portuguese noun 'livro'?",
						QuestionDescription: "Choose the appropriate definite article.",
						Options:             []string{"o", "a", "os", "as"},
						CorrectAnswers:      []string{"o"},
						Hint:                "Masculine singular nouns use 'o' as their definite article.",
					},
					{
						QuestionText:        "What is the plural form of the Portuguese noun 'mulher'?",
						QuestionDescription: "Select the correct plural form.",
						Options:             []string{"mulheres", "mulhers", "mulheris", "mulher"},
						CorrectAnswers:      []string{"mulheres"},
						Hint:                "Many Portuguese nouns add 'es' to form the plural.",
					},
					{
						QuestionText:        "Which of these Portuguese nouns is masculine?",
						QuestionDescription: "Identify the masculine noun.",
						Options:             []string{"sol (sun)", "flor (flower)", "nação (nation)", "noite (night)"},
						CorrectAnswers:      []string{"sol (sun)"},
						Hint:                "Most Portuguese nouns ending in consonants are masculine.",
					},
					{
						QuestionText:        "What is the diminutive form of the Portuguese noun 'casa'?",
						QuestionDescription: "Select the correct diminutive form.",
						Options:             []string{"casinha", "casita", "casica", "casona"},
						CorrectAnswers:      []string{"casinha"},
						Hint:                "Many Portuguese diminutives are formed with the suffix '-inho/a'.",
					},
				},
				fillInTheBlank: []llm.RawQuestion{
					{
						QuestionText:        "Complete the sentence with the correct article:",
						QuestionDescription: "Fill in the blank with the appropriate definite article.",
						QuestionSentence:    "____ casa é grande.",
						CorrectAnswers:      []string{"A"},
						Hint:                "The noun is feminine singular.",
					},
				},
			},
			{
				keywords: []string{"verb", "conjugation", "tense"},
				multipleChoice: []llm.RawQuestion{
					{
						QuestionText:        "Which word is NOT a Portuguese noun?",
						QuestionDescription: "Identify the word that is not a noun in Portuguese.",
						Options:             []string{"correr (to run)", "pessoa (person)", "cidade (city)", "dia (day)"},
						CorrectAnswers:      []string{"correr (to run)"},
						Hint:                "Look for the verb in the list.",
					},
					{
						QuestionText:        "Which is the correct first person singular of 'falar' in the present tense?",
						QuestionDescription: "Choose the correct conjugation.",
						Options:             []string{"falo", "falas", "fala", "falamos"},
						CorrectAnswers:      []string{"falo"},
						Hint:                "Regular -ar verbs end in '-o' for 'eu'.",
					},
				},
				fillInTheBlank: []llm.RawQuestion{
					{
						QuestionText:        "Complete the sentence with the correct verb form:",
						QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
						QuestionSentence:    "Eu ____ português todos os dias.",
						CorrectAnswers:      []string{"falo"},
						Hint:                "First person singular of 'falar'.",
					},
					{
						QuestionText:        "Complete the sentence with the correct verb form:",
						QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
						QuestionSentence:    "Nós ____ para a escola de manhã.",
						CorrectAnswers:      []string{"vamos"},
						Hint:                "First person plural of 'ir'.",
					},
					{
						QuestionText:        "Complete the sentence with the correct verb form:",
						QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
						QuestionSentence:    "O gato ____ no sofá.",
						CorrectAnswers:      []string{"está"},
						Hint:                "Temporary location uses 'estar'.",
					},
				},
			},
		},
		generic: bankPool{
			multipleChoice: []llm.RawQuestion{
				{
					QuestionText:        "What is the correct article to use with the Portuguese noun 'mesa'?",
					QuestionDescription: "Choose the appropriate definite article.",
					Options:             []string{"a", "o", "as", "os"},
					CorrectAnswers:      []string{"a"},
					Hint:                "Feminine singular nouns use 'a' as their definite article.",
				},
				{
					QuestionText:        "What is the Portuguese word for 'please'?",
					QuestionDescription: "Choose the correct translation.",
					Options:             []string{"Por favor", "Obrigado", "De nada", "Sim"},
					CorrectAnswers:      []string{"Por favor"},
					Hint:                "A common polite expression.",
				},
				{
					QuestionText:        "What is the Portuguese word for 'yes'?",
					QuestionDescription: "Choose the correct translation.",
					Options:             []string{"Sim", "Não", "Talvez", "Por favor"},
					CorrectAnswers:      []string{"Sim"},
					Hint:                "The opposite of 'não'.",
				},
			},
			fillInTheBlank: []llm.RawQuestion{
				{
					QuestionText:        "Complete the sentence with the correct word:",
					QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
					QuestionSentence:    "A casa é ____.",
					CorrectAnswers:      []string{"grande"},
					Hint:                "An adjective describing size.",
				},
				{
					QuestionText:        "Complete the sentence with the correct word:",
					QuestionDescription: "Fill in the blank with the appropriate Portuguese word.",
					QuestionSentence:    "Eles ____ muito felizes.",
					CorrectAnswers:      []string{"são"},
					Hint:                "Permanent qualities use 'ser'.",
				},
			},
		},
	}
}
