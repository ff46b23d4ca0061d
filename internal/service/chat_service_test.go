package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/domain/mocks"
)

func TestChatService_Reply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockTextGenerator(ctrl)
	service := NewChatService(mockGenerator, newTestLogger(ctrl))

	ctx := context.Background()

	t.Run("brief and conversation flow into the prompt", func(t *testing.T) {
		mockGenerator.EXPECT().GenerateText(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, system, user string) (string, error) {
				assert.Contains(t, user, "Brief de design")
				assert.Contains(t, user, "user: Quelle proposition est la plus adaptée ?")
				return "La proposition Épure colle à votre brief minimaliste.", nil
			})

		reply, err := service.Reply(ctx, &domain.ChatRequest{
			SessionID:   "s1",
			DesignBrief: "Direction minimaliste, palette terracotta.",
			Messages: []domain.ChatMessage{
				{Role: "user", Content: "Quelle proposition est la plus adaptée ?"},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, reply, "Épure")
	})

	t.Run("generator failure", func(t *testing.T) {
		mockGenerator.EXPECT().GenerateText(ctx, gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))

		_, err := service.Reply(ctx, &domain.ChatRequest{
			SessionID: "s1",
			Messages:  []domain.ChatMessage{{Role: "user", Content: "bonjour"}},
		})
		assert.Error(t, err)
	})

	t.Run("empty conversation", func(t *testing.T) {
		_, err := service.Reply(ctx, &domain.ChatRequest{SessionID: "s1"})
		assert.True(t, domain.IsValidationError(err))
	})
}
