package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"autokey-backend/config"
	"autokey-backend/crypto"
	"autokey-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	RegisterRoutes(router, NewCipherHandler(cfg, logger))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	field, filename string
	data            []byte
}

func postMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := newTestRouter(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestEncryptTextJSON(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := postJSON(t, router, "/api/v1/text/encrypt", models.TextRequest{Text: "HELLO WORLD", Key: "SECRET"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ZINCS PVVWO", resp.Result)
	assert.Equal(t, "ciphertext.txt", resp.DownloadFilename)
	assert.Equal(t, 11, resp.TraceRowsTotal)
	require.Len(t, resp.Trace, 11)
	assert.Equal(t, "SECRETHELLOWORLD", resp.Trace[10].Keystream)
	assert.Nil(t, resp.Trace[5].InputCode)
}

func TestDecryptTextJSON(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := postJSON(t, router, "/api/v1/text/decrypt", models.TextRequest{Text: "ZINCS PVVWO", Key: "SECRET"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HELLO WORLD", resp.Result)
	assert.Equal(t, "plaintext.txt", resp.DownloadFilename)
}

func TestTextRejectsMissingOrLetterlessKey(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := postJSON(t, router, "/api/v1/text/encrypt", map[string]string{"text": "HELLO"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/text/encrypt", models.TextRequest{Text: "HELLO", Key: "1234"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid key")
	assert.Contains(t, rec.Body.String(), crypto.ErrEmptyKey.Error())

	rec = postJSON(t, router, "/api/v1/text/decrypt", models.TextRequest{Text: "HELLO", Key: "-- 42 --"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), crypto.ErrEmptyKey.Error())
}

func TestEncryptTextFileTruncatesTrace(t *testing.T) {
	cfg := config.Default()
	cfg.TracePreviewRows = 3
	cfg.PreviewChars = 5
	router := newTestRouter(t, cfg)

	rec := postMultipart(t, router, "/api/v1/text/encrypt",
		map[string]string{"key": "SECRET"},
		upload{field: "file", filename: "letter.txt", data: []byte("hello\r\nworld")},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ZINCS PVVWO", resp.Result)
	assert.Equal(t, "ZINCS...", resp.Preview)
	assert.Equal(t, "letter.txt_encrypted.txt", resp.DownloadFilename)
	assert.Len(t, resp.Trace, 3)
	assert.Equal(t, 11, resp.TraceRowsTotal)
}

func TestTextFileValidation(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := postMultipart(t, router, "/api/v1/text/encrypt",
		map[string]string{"key": "SECRET"},
		upload{field: "file", filename: "image.png", data: []byte("not text")},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postMultipart(t, router, "/api/v1/text/encrypt",
		map[string]string{"key": "SECRET"},
		upload{field: "file", filename: "broken.txt", data: []byte{0xff, 0xfe, 0x00}},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UTF-8")

	rec = postMultipart(t, router, "/api/v1/text/encrypt", map[string]string{"key": "SECRET"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFileRoundTrip(t *testing.T) {
	router := newTestRouter(t, config.Default())
	original := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\nsome binary body\x00\x01\x02")

	rec := postMultipart(t, router, "/api/v1/file/encrypt",
		map[string]string{"key": "STRONGKEY123"},
		upload{field: "file", filename: "report.pdf", data: original},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.pdf.enc"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "application/pdf", rec.Header().Get("X-Autokey-Detected-Type"))

	encrypted := rec.Body.Bytes()
	assert.Len(t, encrypted, len(original))
	want, err := crypto.EncryptBytes(original, "STRONGKEY123")
	require.NoError(t, err)
	assert.Equal(t, want, encrypted)

	rec = postMultipart(t, router, "/api/v1/file/decrypt",
		map[string]string{"key": "STRONGKEY123"},
		upload{field: "file", filename: "report.pdf.enc", data: encrypted},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, original, rec.Body.Bytes())
	assert.Equal(t, `attachment; filename="report.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestFileRequiresKeyAndFile(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := postMultipart(t, router, "/api/v1/file/encrypt", nil,
		upload{field: "file", filename: "a.bin", data: []byte{1, 2, 3}},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), crypto.ErrEmptyKey.Error())

	rec = postMultipart(t, router, "/api/v1/file/decrypt", map[string]string{"key": "k"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFileRejectsOversizedUpload(t *testing.T) {
	cfg := config.Default()
	cfg.MaxUploadBytes = 64
	router := newTestRouter(t, cfg)

	rec := postMultipart(t, router, "/api/v1/file/encrypt",
		map[string]string{"key": "k"},
		upload{field: "file", filename: "big.bin", data: bytes.Repeat([]byte{7}, 4096)},
	)
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "photo.png.enc", encryptedFilename("photo.png"))
	assert.Equal(t, "photo.png", decryptedFilename("photo.png.enc"))
	assert.Equal(t, "notes.txt", decryptedFilename("notes.txt"))
	assert.Equal(t, "my.encrypted.doc", decryptedFilename("my.encrypted.doc"))
	assert.Equal(t, "a.txt_decrypted.txt", textDownloadName("a.txt", true))
}
