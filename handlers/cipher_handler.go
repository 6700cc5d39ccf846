// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"autokey-backend/config"
	"autokey-backend/crypto"
	"autokey-backend/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const encryptedExt = ".enc"

type CipherHandler struct {
	cfg    config.Config
	logger *slog.Logger
}

func NewCipherHandler(cfg config.Config, logger *slog.Logger) *CipherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CipherHandler{
		cfg:    cfg,
		logger: logger,
	}
}

func (h *CipherHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Autokey cipher API is running",
		"version": "1.0.0",
	})
}

func (h *CipherHandler) EncryptText(c *gin.Context) {
	h.processText(c, false)
}

func (h *CipherHandler) DecryptText(c *gin.Context) {
	h.processText(c, true)
}

func (h *CipherHandler) EncryptFile(c *gin.Context) {
	h.processFile(c, false)
}

func (h *CipherHandler) DecryptFile(c *gin.Context) {
	h.processFile(c, true)
}

// processText accepts either a JSON body or a multipart .txt upload
func (h *CipherHandler) processText(c *gin.Context, decrypt bool) {
	var text, key, sourceName string

	if isMultipart(c) {
		if status, err := h.parseUpload(c); err != nil {
			c.JSON(status, models.TextResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to parse form: %v", err),
			})
			return
		}

		key = c.PostForm("key")
		data, header, err := readFormFile(c, "file")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.TextResponse{
				Success: false,
				Message: "Text file is required",
			})
			return
		}

		if !isValidTextFile(header.Filename) {
			c.JSON(http.StatusBadRequest, models.TextResponse{
				Success: false,
				Message: "Invalid file format. Only .txt files are supported, use the file endpoints for other files",
			})
			return
		}

		if !utf8.Valid(data) {
			c.JSON(http.StatusBadRequest, models.TextResponse{
				Success: false,
				Message: "File cannot be read as UTF-8 text",
			})
			return
		}

		text = string(data)
		sourceName = header.Filename
	} else {
		var req models.TextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.TextResponse{
				Success: false,
				Message: "Text and key are required",
			})
			return
		}
		text, key = req.Text, req.Key
	}

	cipherFunc, opName := crypto.EncryptText, "encrypt"
	if decrypt {
		cipherFunc, opName = crypto.DecryptText, "decrypt"
	}

	// the only failure of the text engines is a key without letters
	result, trace, err := cipherFunc(text, key)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.TextResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	resp := models.TextResponse{
		Success:          true,
		Message:          fmt.Sprintf("Text successfully %sed", opName),
		Result:           result,
		DownloadFilename: textDownloadName(sourceName, decrypt),
		InputLength:      utf8.RuneCountInString(text),
		OutputLength:     len(result),
		Trace:            trace,
		TraceRowsTotal:   len(trace),
	}

	// uploaded files can be long, only a preview of the trace and result is echoed inline
	if sourceName != "" {
		resp.Trace = trace.Head(h.cfg.TracePreviewRows)
		resp.Preview = preview(result, h.cfg.PreviewChars)
	}

	h.logger.Info("text cipher",
		"request_id", RequestIDFrom(c),
		"op", opName,
		"source", sourceName,
		"input_length", resp.InputLength,
		"output_length", resp.OutputLength,
		"trace_rows", len(trace),
	)

	c.JSON(http.StatusOK, resp)
}

// processFile runs the byte-level Autokey cipher on any uploaded file and
// streams the result back as a download.
func (h *CipherHandler) processFile(c *gin.Context, decrypt bool) {
	if status, err := h.parseUpload(c); err != nil {
		c.JSON(status, models.FileResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	key := c.PostForm("key")
	if err := crypto.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.FileResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	data, header, err := readFormFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.FileResponse{
			Success: false,
			Message: "File is required",
		})
		return
	}

	cipher, err := crypto.NewExtendedAutokey(key)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.FileResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	var output, plaintext []byte
	var outputFilename, opName string
	if decrypt {
		output = cipher.Decrypt(data)
		plaintext = output
		outputFilename = decryptedFilename(header.Filename)
		opName = "decrypt"
	} else {
		output = cipher.Encrypt(data)
		plaintext = data
		outputFilename = encryptedFilename(header.Filename)
		opName = "encrypt"
	}

	// a wrong key on decryption usually shows up as application/octet-stream here
	detected := mimetype.Detect(plaintext)
	contentType := "application/octet-stream"
	if decrypt {
		contentType = detected.String()
	}

	h.logger.Info("file cipher",
		"request_id", RequestIDFrom(c),
		"op", opName,
		"filename", header.Filename,
		"size", len(data),
		"detected_type", detected.String(),
	)

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(output)))

	c.Header("X-Autokey-Method", "Autokey mod 256")
	c.Header("X-Autokey-Detected-Type", detected.String())
	c.Header("X-Autokey-Input-Size", fmt.Sprintf("%d", len(data)))
	c.Header("X-Autokey-Output-Size", fmt.Sprintf("%d", len(output)))

	c.Data(http.StatusOK, contentType, output)
}

// parseUpload bounds the request body and parses the multipart form
func (h *CipherHandler) parseUpload(c *gin.Context) (int, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

func readFormFile(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return data, header, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}

func isValidTextFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt"
}

func encryptedFilename(name string) string {
	return filepath.Base(name) + encryptedExt
}

// decryptedFilename strips a trailing .enc, other names are kept as they are
func decryptedFilename(name string) string {
	return strings.TrimSuffix(filepath.Base(name), encryptedExt)
}

func textDownloadName(sourceName string, decrypt bool) string {
	if sourceName == "" {
		if decrypt {
			return "plaintext.txt"
		}
		return "ciphertext.txt"
	}
	if decrypt {
		return filepath.Base(sourceName) + "_decrypted.txt"
	}
	return filepath.Base(sourceName) + "_encrypted.txt"
}

func preview(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
