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

func TestDashboardService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClients := mocks.NewMockClientRepository(ctrl)
	mockSessions := mocks.NewMockSessionRepository(ctrl)
	mockResponses := mocks.NewMockResponseRepository(ctrl)
	mockSelections := mocks.NewMockSelectionRepository(ctrl)
	service := NewDashboardService(mockClients, mockSessions, mockResponses, mockSelections, newTestLogger(ctrl))

	ctx := context.Background()

	t.Run("aggregates all counters", func(t *testing.T) {
		mockClients.EXPECT().Count(gomock.Any()).Return(12, nil)
		mockSessions.EXPECT().CountByStatus(gomock.Any()).
			Return(&domain.SessionStatusCounts{Pending: 3, InProgress: 2, Completed: 7}, nil)
		mockResponses.EXPECT().CountCompleted(gomock.Any()).Return(7, nil)
		mockSessions.EXPECT().CountShowroomActions(gomock.Any()).
			Return(&domain.ShowroomActionCounts{Sent: 5, QuoteRequested: 2, Signed: 1}, nil)
		mockSelections.EXPECT().CountByAction(gomock.Any()).
			Return(map[domain.ActionType]int{domain.ActionQuoteRequest: 2, domain.ActionSigned: 1}, nil)

		stats, err := service.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, stats.TotalClients)
		assert.Equal(t, 7, stats.Sessions.Completed)
		assert.Equal(t, 7, stats.CompletedResponses)
		assert.Equal(t, 1, stats.Showroom.Signed)
		assert.Equal(t, 2, stats.Selections[domain.ActionQuoteRequest])
	})

	t.Run("any counter failure fails the whole call", func(t *testing.T) {
		mockClients.EXPECT().Count(gomock.Any()).Return(0, errors.New("db down")).AnyTimes()
		mockSessions.EXPECT().CountByStatus(gomock.Any()).Return(&domain.SessionStatusCounts{}, nil).AnyTimes()
		mockResponses.EXPECT().CountCompleted(gomock.Any()).Return(0, nil).AnyTimes()
		mockSessions.EXPECT().CountShowroomActions(gomock.Any()).Return(&domain.ShowroomActionCounts{}, nil).AnyTimes()
		mockSelections.EXPECT().CountByAction(gomock.Any()).Return(map[domain.ActionType]int{}, nil).AnyTimes()

		_, err := service.GetStats(ctx)
		assert.Error(t, err)
	})
}
