package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"festregistration/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileStore implements domain.FileStore for handler tests.
type fakeFileStore struct {
	url          string
	err          error
	lastFilename string
	lastContent  []byte
}

func (f *fakeFileStore) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	f.lastFilename = filename
	f.lastContent, _ = io.ReadAll(r)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadController_Upload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeFileStore{url: "/uploads/generated.png"}
		ctrl := NewUploadController(testLogger, fake)
		body, contentType := multipartBody(t, "file", "college-id.png", "fake-image-bytes")
		req := httptest.NewRequest(http.MethodPost, "http://test/uploads", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "/uploads/generated.png", data["url"])
		assert.Equal(t, "college-id.png", fake.lastFilename)
		assert.Equal(t, "fake-image-bytes", string(fake.lastContent))
	})

	t.Run("missing file field", func(t *testing.T) {
		fake := &fakeFileStore{url: "/uploads/generated.png"}
		ctrl := NewUploadController(testLogger, fake)
		body, contentType := multipartBody(t, "attachment", "college-id.png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "http://test/uploads", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		fake := &fakeFileStore{}
		ctrl := NewUploadController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPost, "http://test/uploads", bytes.NewBufferString("plain body"))
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		fake := &fakeFileStore{err: errors.New("disk full")}
		ctrl := NewUploadController(testLogger, fake)
		body, contentType := multipartBody(t, "file", "college-id.png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "http://test/uploads", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
