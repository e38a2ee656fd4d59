package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventQueryService implements domain.EventQueryService for handler tests.
type fakeEventQueryService struct {
	listResult   []*domain.EventRecord
	listErr      error
	lastDay      domain.FestDay
	lastCategory domain.EventCategory

	getResult *domain.EventRecord
	getErr    error

	statusResult domain.RegistrationStatus
	statusErr    error

	openResult []*domain.EventRecord
	openErr    error
}

func (f *fakeEventQueryService) ListEvents(_ context.Context, day domain.FestDay, category domain.EventCategory) ([]*domain.EventRecord, error) {
	f.lastDay = day
	f.lastCategory = category
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeEventQueryService) GetEvent(_ context.Context, _ string) (*domain.EventRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventQueryService) EffectiveStatus(_ context.Context, _ string) (domain.RegistrationStatus, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.statusResult, nil
}

func (f *fakeEventQueryService) ListOpenEvents(_ context.Context) ([]*domain.EventRecord, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.openResult, nil
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		fakeErr      error
		fakeResult   []*domain.EventRecord
		wantStatus   int
		wantErrCode  string
		wantDay      domain.FestDay
		wantCategory domain.EventCategory
		wantCount    int
	}{
		{
			name: "success no filters",
			fakeResult: []*domain.EventRecord{
				{ID: "code-clash", Name: "Code Clash"},
				{ID: "tech-quiz", Name: "Tech Quiz"},
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:         "filters passed through",
			query:        "?fest_day=day1&category=technical",
			fakeResult:   []*domain.EventRecord{{ID: "code-clash"}},
			wantStatus:   http.StatusOK,
			wantDay:      domain.FestDay1,
			wantCategory: domain.CategoryTechnical,
			wantCount:    1,
		},
		{
			name:       "empty result is an empty array",
			fakeResult: nil,
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name:        "unknown filter value",
			query:       "?fest_day=day9",
			fakeErr:     domain.ErrInvalidInput,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "service error",
			fakeErr:     errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventQueryService{listResult: tt.fakeResult, listErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				events, ok := envelope.Data.([]any)
				require.True(t, ok, "data must be an array")
				assert.Len(t, events, tt.wantCount)
				assert.Equal(t, tt.wantDay, fake.lastDay)
				assert.Equal(t, tt.wantCategory, fake.lastCategory)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name        string
		eventID     string
		fakeErr     error
		fakeResult  *domain.EventRecord
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			eventID:    "code-clash",
			fakeResult: &domain.EventRecord{ID: "code-clash", Name: "Code Clash"},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing eventID",
			eventID:     "",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "not found",
			eventID:     "no-such-event",
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventQueryService{getResult: tt.fakeResult, getErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.eventID, nil)
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				data, ok := envelope.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.fakeResult.ID, data["id"])
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}

func TestEventController_GetEventStatus(t *testing.T) {
	tests := []struct {
		name        string
		eventID     string
		fakeStatus  domain.RegistrationStatus
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "open",
			eventID:    "code-clash",
			fakeStatus: domain.RegistrationOpen,
			wantStatus: http.StatusOK,
		},
		{
			name:       "closed by global switch",
			eventID:    "code-clash",
			fakeStatus: domain.RegistrationClosed,
			wantStatus: http.StatusOK,
		},
		{
			name:        "not found",
			eventID:     "no-such-event",
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventQueryService{statusResult: tt.fakeStatus, statusErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.eventID+"/status", nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.GetEventStatus(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				data, ok := envelope.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.eventID, data["event_id"])
				assert.Equal(t, string(tt.fakeStatus), data["status"])
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}

func TestEventController_ListOpenEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventQueryService{openResult: []*domain.EventRecord{{ID: "code-clash"}}}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/open", nil)
		rr := httptest.NewRecorder()

		ctrl.ListOpenEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		events, ok := envelope.Data.([]any)
		require.True(t, ok)
		assert.Len(t, events, 1)
	})

	t.Run("empty when switch off", func(t *testing.T) {
		fake := &fakeEventQueryService{openResult: nil}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/open", nil)
		rr := httptest.NewRecorder()

		ctrl.ListOpenEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		events, ok := envelope.Data.([]any)
		require.True(t, ok, "data must be an empty array, not null")
		assert.Empty(t, events)
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeEventQueryService{openErr: errors.New("boom")}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/open", nil)
		rr := httptest.NewRecorder()

		ctrl.ListOpenEvents(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
