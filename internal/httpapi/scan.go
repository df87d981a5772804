package httpapi

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aura/internal/scan"

	"github.com/google/uuid"
)

// tempFileTTL is how long an uploaded document sits on disk before removal.
const tempFileTTL = 30 * time.Second

// maxUploadBytes caps document uploads at 10MB.
const maxUploadBytes = 10 << 20

type scanImageRequest struct {
	ImageData string `json:"imageData"`
	ImageType string `json:"imageType"`
}

// ScanImage handles base64 camera snapshots.
func (h *Handler) ScanImage(w http.ResponseWriter, r *http.Request) {
	var req scanImageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := decodeImagePayload(req.ImageData)
	if err != nil {
		h.logger.Warn("malformed image upload", "error", err)
		h.Error(w, http.StatusBadRequest, "Sorry, I couldn't read that image. Could you try taking the photo again?")
		return
	}

	h.writeScanResult(w, data)
}

// ScanDocument handles multipart file uploads. The file is staged to a temp
// path and deleted after a short delay, mirroring how the client re-requests
// results.
func (h *Handler) ScanDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		h.Error(w, http.StatusBadRequest, "Sorry, I couldn't find a document in that upload. Please try again.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.Error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("aura_scan_%s%s", uuid.NewString(), filepath.Ext(header.Filename)))
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		h.logger.Warn("failed to stage uploaded document", "error", err)
	} else {
		h.logger.Info("document staged", "path", tmpPath, "size", len(data))
		time.AfterFunc(tempFileTTL, func() {
			if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
				h.logger.Warn("failed to remove staged document", "path", tmpPath, "error", err)
			}
		})
	}

	h.writeScanResult(w, data)
}

func (h *Handler) writeScanResult(w http.ResponseWriter, data []byte) {
	result := h.analyzer.Scan(data)

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"scan":      scanEnvelope(result),
		"timestamp": h.timestamp(),
	})
}

// scanEnvelope decorates a scan result with the voice fields the client
// speaks aloud.
func scanEnvelope(result scan.Result) map[string]interface{} {
	return map[string]interface{}{
		"scanId":            result.ScanID,
		"documentType":      result.DocumentType,
		"bodyText":          result.BodyText,
		"keyPoints":         result.KeyPoints,
		"confidencePercent": result.ConfidencePercent,
		"message":           fmt.Sprintf("I scanned your %s with %d%% confidence.", result.DocumentType, result.ConfidencePercent),
		"voiceMessage":      fmt.Sprintf("Done! It looks like a %s. Want me to read the key points?", result.DocumentType),
	}
}

// decodeImagePayload accepts raw base64 or a data URL.
func decodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("empty image payload")
	}
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return data, nil
}
