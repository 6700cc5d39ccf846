// Package models contain needed models
package models

import "autokey-backend/crypto"

// TextRequest represents a manual text encryption or decryption request
type TextRequest struct {
	Text string `json:"text" binding:"required"`
	Key  string `json:"key" binding:"required"`
}

// TextResponse represents the response of the text cipher endpoints
type TextResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	Result           string            `json:"result,omitempty"`
	Preview          string            `json:"preview,omitempty"`
	DownloadFilename string            `json:"download_filename,omitempty"`
	InputLength      int               `json:"input_length,omitempty"`
	OutputLength     int               `json:"output_length,omitempty"`
	Trace            crypto.TraceTable `json:"trace,omitempty"`
	TraceRowsTotal   int               `json:"trace_rows_total,omitempty"`
}

// FileResponse is only sent when a binary file operation fails, successful
// calls stream the processed file back.
type FileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecoverKeyRequest represents a known-plaintext key recovery request
type RecoverKeyRequest struct {
	Plaintext  string `json:"plaintext" binding:"required"`
	Ciphertext string `json:"ciphertext" binding:"required"`
	Align      string `json:"align"`
}

// RecoverKeyResponse represents the outcome of a key recovery
type RecoverKeyResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	Key              string            `json:"key,omitempty"`
	Keystream        string            `json:"keystream,omitempty"`
	Matched          bool              `json:"matched"`
	Align            string            `json:"align,omitempty"`
	DownloadFilename string            `json:"download_filename,omitempty"`
	Trace            crypto.TraceTable `json:"trace,omitempty"`
	TraceRowsTotal   int               `json:"trace_rows_total,omitempty"`
}
