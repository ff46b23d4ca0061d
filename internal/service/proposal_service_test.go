package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/domain/mocks"
	pkgmocks "github.com/archetype-studio/archetype/pkg/mocks"
)

func TestProposalService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockProposalRepository(ctrl)
	mockSessions := mocks.NewMockSessionRepository(ctrl)
	mockStore := pkgmocks.NewMockObjectStore(ctrl)
	service := NewProposalService(mockRepo, mockSessions, mockStore, newTestLogger(ctrl))

	ctx := context.Background()
	session := &domain.Session{ID: "s1", Status: domain.SessionStatusCompleted}

	t.Run("html proposal", func(t *testing.T) {
		mockSessions.EXPECT().GetByID(ctx, "s1").Return(session, nil)
		mockRepo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, p *domain.DesignProposal) error {
				assert.Equal(t, 1, p.SlotNumber)
				assert.Equal(t, "<section>maquette</section>", p.HTMLCode)
				assert.Empty(t, p.ImageURL)
				return nil
			})

		proposal, err := service.Save(ctx, &SaveProposalRequest{
			SessionID:  "s1",
			SlotNumber: 1,
			Title:      "Épure",
			Price:      2400,
			HTMLCode:   "<section>maquette</section>",
		})
		require.NoError(t, err)
		assert.Equal(t, "Épure", proposal.Title)
	})

	t.Run("base64 image is uploaded", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
		mockSessions.EXPECT().GetByID(ctx, "s1").Return(session, nil)
		mockStore.EXPECT().Put(ctx, "proposals/s1/slot-2.png", "image/png", []byte("png-bytes")).
			Return("https://cdn.example/proposals/s1/slot-2.png", nil)
		mockRepo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, p *domain.DesignProposal) error {
				assert.Equal(t, "https://cdn.example/proposals/s1/slot-2.png", p.ImageURL)
				return nil
			})

		_, err := service.Save(ctx, &SaveProposalRequest{
			SessionID:   "s1",
			SlotNumber:  2,
			Title:       "Contraste",
			Price:       2900,
			ImageBase64: encoded,
		})
		require.NoError(t, err)
	})

	t.Run("data url prefix is stripped", func(t *testing.T) {
		encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
		mockSessions.EXPECT().GetByID(ctx, "s1").Return(session, nil)
		mockStore.EXPECT().Put(ctx, gomock.Any(), "image/png", []byte("png-bytes")).Return("https://cdn/x.png", nil)
		mockRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		_, err := service.Save(ctx, &SaveProposalRequest{
			SessionID: "s1", SlotNumber: 3, Title: "Organique", Price: 3100, ImageBase64: encoded,
		})
		require.NoError(t, err)
	})

	t.Run("image and html are mutually exclusive", func(t *testing.T) {
		mockSessions.EXPECT().GetByID(ctx, "s1").Return(session, nil)

		_, err := service.Save(ctx, &SaveProposalRequest{
			SessionID: "s1", SlotNumber: 1, Title: "X", Price: 100,
			HTMLCode: "<p>x</p>", ImageBase64: base64.StdEncoding.EncodeToString([]byte("x")),
		})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("slot out of range", func(t *testing.T) {
		mockSessions.EXPECT().GetByID(ctx, "s1").Return(session, nil)

		_, err := service.Save(ctx, &SaveProposalRequest{SessionID: "s1", SlotNumber: 4, Title: "X", Price: 100})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown session", func(t *testing.T) {
		mockSessions.EXPECT().GetByID(ctx, "missing").Return(nil, &domain.ErrNotFound{Entity: "session", ID: "missing"})

		_, err := service.Save(ctx, &SaveProposalRequest{SessionID: "missing", SlotNumber: 1, Title: "X", Price: 1})
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestProposalService_SaveWithoutStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockProposalRepository(ctrl)
	mockSessions := mocks.NewMockSessionRepository(ctrl)
	service := NewProposalService(mockRepo, mockSessions, nil, newTestLogger(ctrl))

	ctx := context.Background()
	mockSessions.EXPECT().GetByID(ctx, "s1").Return(&domain.Session{ID: "s1"}, nil)

	_, err := service.Save(ctx, &SaveProposalRequest{
		SessionID: "s1", SlotNumber: 1, Title: "X", Price: 100,
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	})
	assert.True(t, domain.IsValidationError(err))
}

func TestProposalService_ListAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockProposalRepository(ctrl)
	service := NewProposalService(mockRepo, mocks.NewMockSessionRepository(ctrl), nil, newTestLogger(ctrl))

	ctx := context.Background()

	mockRepo.EXPECT().ListBySession(ctx, "s1").Return([]*domain.DesignProposal{{ID: "p1"}}, nil)
	proposals, err := service.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, proposals, 1)

	mockRepo.EXPECT().Delete(ctx, "p1").Return(nil)
	require.NoError(t, service.Delete(ctx, "p1"))
}
