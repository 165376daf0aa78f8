package app

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

func newUploadRequest(t *testing.T, fileContents []byte, mode string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "scorecard.csv")
	require.NoError(t, err)
	_, err = part.Write(fileContents)
	require.NoError(t, err)

	if mode != "" {
		require.NoError(t, mw.WriteField("mode", mode))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/events/event-1/scorecard/commit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestApp() *App {
	return &App{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestReadUpload_SmallFile(t *testing.T) {
	a := newTestApp()
	rec := httptest.NewRecorder()
	req := newUploadRequest(t, []byte("HOLE,1,2,3"), "")

	_, filename, data, mode, ok := a.readUpload(rec, req)

	require.True(t, ok)
	require.Equal(t, "scorecard.csv", filename)
	require.Equal(t, []byte("HOLE,1,2,3"), data)
	require.Equal(t, scorecardtypes.TokenModeDiff, mode)
}

func TestReadUpload_ModeField(t *testing.T) {
	a := newTestApp()
	rec := httptest.NewRecorder()
	req := newUploadRequest(t, []byte("HOLE,1,2,3"), "strokes")

	_, _, _, mode, ok := a.readUpload(rec, req)

	require.True(t, ok)
	require.Equal(t, scorecardtypes.TokenModeStrokes, mode)
}

func TestReadUpload_RejectsOversizeFile(t *testing.T) {
	a := newTestApp()
	rec := httptest.NewRecorder()
	req := newUploadRequest(t, bytes.Repeat([]byte{'x'}, maxUploadBytes+1), "")

	_, _, _, _, ok := a.readUpload(rec, req)

	require.False(t, ok)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
