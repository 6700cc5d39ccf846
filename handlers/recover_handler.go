package handlers

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"autokey-backend/crypto"
	"autokey-backend/models"

	"github.com/gin-gonic/gin"
)

const recoveredKeyFilename = "found_key.txt"

// RecoverKey runs the known-plaintext attack on a JSON pair or on two uploaded
// text files (plaintext_file and ciphertext_file).
func (h *CipherHandler) RecoverKey(c *gin.Context) {
	var plaintext, ciphertext, alignParam string
	fromFiles := isMultipart(c)

	if fromFiles {
		if status, err := h.parseUpload(c); err != nil {
			c.JSON(status, models.RecoverKeyResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to parse form: %v", err),
			})
			return
		}

		ptData, _, ptErr := readFormFile(c, "plaintext_file")
		ctData, _, ctErr := readFormFile(c, "ciphertext_file")
		if ptErr != nil || ctErr != nil {
			c.JSON(http.StatusBadRequest, models.RecoverKeyResponse{
				Success: false,
				Message: "Both plaintext_file and ciphertext_file are required",
			})
			return
		}

		if !utf8.Valid(ptData) || !utf8.Valid(ctData) {
			c.JSON(http.StatusBadRequest, models.RecoverKeyResponse{
				Success: false,
				Message: "Files cannot be read as UTF-8 text",
			})
			return
		}

		plaintext, ciphertext = string(ptData), string(ctData)
		alignParam = c.PostForm("align")
	} else {
		var req models.RecoverKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.RecoverKeyResponse{
				Success: false,
				Message: "Plaintext and ciphertext are required",
			})
			return
		}
		plaintext, ciphertext, alignParam = req.Plaintext, req.Ciphertext, req.Align
	}

	align, err := crypto.ParseAlignment(alignParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.RecoverKeyResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid align: %v", err),
		})
		return
	}

	rec := crypto.Recover(plaintext, ciphertext, align)

	message := "Key successfully recovered"
	if !rec.Matched {
		message = "Key boundary not found, the whole derived keystream is returned as a best guess"
	}

	resp := models.RecoverKeyResponse{
		Success:          true,
		Message:          message,
		Key:              rec.Key,
		Keystream:        rec.Keystream,
		Matched:          rec.Matched,
		Align:            align.String(),
		DownloadFilename: recoveredKeyFilename,
		Trace:            rec.Trace,
		TraceRowsTotal:   len(rec.Trace),
	}
	if fromFiles {
		resp.Trace = rec.Trace.Head(h.cfg.TracePreviewRows)
	}

	h.logger.Info("key recovery",
		"request_id", RequestIDFrom(c),
		"align", align.String(),
		"matched", rec.Matched,
		"keystream_length", len(rec.Keystream),
	)

	c.JSON(http.StatusOK, resp)
}
