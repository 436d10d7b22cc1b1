// Package mocks provides a testify-based mock of the model gateway.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"portagees/backend/internal/llm"
	"portagees/backend/internal/model"
)

// MockProvider mocks llm.Provider.
type MockProvider struct {
	mock.Mock
}

func NewMockProvider(t *testing.T) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) Complete(ctx context.Context, message string, history []llm.Message) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) GenerateQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int, questionType model.QuestionType) ([]llm.RawQuestion, error) {
	args := m.Called(ctx, topic, difficulty, count, questionType)
	if raw := args.Get(0); raw != nil {
		return raw.([]llm.RawQuestion), args.Error(1)
	}
	return nil, args.Error(1)
}
