package controllers

import (
	"bytes"
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

// fakeContentService implements domain.ContentService for handler tests.
type fakeContentService struct {
	getResult json.RawMessage
	getErr    error
	putErr    error

	lastPutSection string
	lastPutBody    json.RawMessage
}

func (f *fakeContentService) GetSection(_ context.Context, _ string) (json.RawMessage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeContentService) PutSection(_ context.Context, section string, body json.RawMessage) error {
	f.lastPutSection = section
	f.lastPutBody = body
	return f.putErr
}

func TestContentController_GetContent(t *testing.T) {
	tests := []struct {
		name        string
		section     string
		fakeResult  json.RawMessage
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			section:    "about",
			fakeResult: json.RawMessage(`{"title":"About the Society","body":"We run the annual fest."}`),
			wantStatus: http.StatusOK,
		},
		{
			name:        "not found",
			section:     "missing",
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "store error",
			section:     "about",
			fakeErr:     errors.New("db error"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeContentService{getResult: tt.fakeResult, getErr: tt.fakeErr}
			ctrl := NewContentController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/content/"+tt.section, nil)
			req.SetPathValue("section", tt.section)
			rr := httptest.NewRecorder()

			ctrl.GetContent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				data, ok := envelope.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "About the Society", data["title"])
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}

func TestContentController_PutContent(t *testing.T) {
	tests := []struct {
		name        string
		section     string
		body        string
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			section:    "council",
			body:       `{"members":[{"name":"Asha Rao","role":"President"}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:        "invalid json rejected by service",
			section:     "council",
			body:        `{not json`,
			fakeErr:     domain.ErrInvalidInput,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "store error",
			section:     "council",
			body:        `{}`,
			fakeErr:     errors.New("db error"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeContentService{putErr: tt.fakeErr}
			ctrl := NewContentController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPut, "http://test/admin/content/"+tt.section, bytes.NewBufferString(tt.body))
			req.SetPathValue("section", tt.section)
			rr := httptest.NewRecorder()

			ctrl.PutContent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.section, fake.lastPutSection)
				assert.JSONEq(t, tt.body, string(fake.lastPutBody))
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
		})
	}
}
