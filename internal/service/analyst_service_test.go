package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/domain/mocks"
)

func TestAnalystService_GenerateBrief(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockTextGenerator(ctrl)
	mockPrompts := mocks.NewMockGeneratedPromptRepository(ctrl)
	service := NewAnalystService(mockGenerator, mockPrompts, newTestLogger(ctrl))

	ctx := context.Background()

	req := &domain.GenerateBriefRequest{
		SessionID: "s1",
		Questionnaire: map[string]string{
			"ambiance": "minimaliste",
			"palette":  "terracotta",
		},
		ClientName: "Atelier Céramique",
		WebsiteURL: "https://atelier.example",
	}

	t.Run("generates and stores the brief", func(t *testing.T) {
		mockGenerator.EXPECT().GenerateText(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, system, user string) (string, error) {
				assert.Contains(t, user, "Atelier Céramique")
				assert.Contains(t, user, "ambiance: minimaliste")
				// Sorted question keys keep regeneration deterministic
				assert.Less(t, strings.Index(user, "ambiance:"), strings.Index(user, "palette:"))
				return "# Brief\nDirection artistique épurée.", nil
			})
		mockPrompts.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, p *domain.GeneratedPrompt) error {
				assert.Equal(t, "s1", p.SessionID)
				assert.Equal(t, domain.PromptTypeAnalystBrief, p.PromptType)
				assert.Contains(t, p.PromptContent, "Direction artistique")
				return nil
			})

		brief, err := service.GenerateBrief(ctx, req)
		require.NoError(t, err)
		assert.Contains(t, brief, "# Brief")
	})

	t.Run("voice analysis section included when present", func(t *testing.T) {
		withVoice := *req
		withVoice.VoiceAnalysis = `{"vision_globale":"site chaleureux"}`

		mockGenerator.EXPECT().GenerateText(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, system, user string) (string, error) {
				assert.Contains(t, user, "note vocale")
				assert.Contains(t, user, "site chaleureux")
				return "brief", nil
			})
		mockPrompts.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		_, err := service.GenerateBrief(ctx, &withVoice)
		require.NoError(t, err)
	})

	t.Run("generation failure", func(t *testing.T) {
		mockGenerator.EXPECT().GenerateText(ctx, gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

		_, err := service.GenerateBrief(ctx, req)
		assert.Error(t, err)
	})

	t.Run("missing session id", func(t *testing.T) {
		_, err := service.GenerateBrief(ctx, &domain.GenerateBriefRequest{})
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestAnalystService_GetBrief(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockTextGenerator(ctrl)
	mockPrompts := mocks.NewMockGeneratedPromptRepository(ctrl)
	service := NewAnalystService(mockGenerator, mockPrompts, newTestLogger(ctrl))

	ctx := context.Background()

	mockPrompts.EXPECT().Get(ctx, "s1", domain.PromptTypeAnalystBrief).
		Return(&domain.GeneratedPrompt{SessionID: "s1", PromptContent: "le brief"}, nil)
	prompt, err := service.GetBrief(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "le brief", prompt.PromptContent)

	mockPrompts.EXPECT().Get(ctx, "missing", domain.PromptTypeAnalystBrief).
		Return(nil, &domain.ErrNotFound{Entity: "generated_prompt", ID: "missing"})
	_, err = service.GetBrief(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}
