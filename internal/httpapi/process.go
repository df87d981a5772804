package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"aura/internal/command"
	"aura/internal/config"
	"aura/internal/store"

	"github.com/go-chi/chi/v5/middleware"
)

type processRequest struct {
	Command string `json:"command"`
	Mode    string `json:"mode"`
	UserID  string `json:"userId"`
}

type voiceRequest struct {
	Command   string `json:"command"`
	AudioData string `json:"audioData"`
}

// Process handles typed commands.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		h.Error(w, http.StatusBadRequest, "command is required")
		return
	}

	result := h.route(r, req.Command, req.UserID, req.Mode)

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"response":    result.Response,
		"api_used":    result.APIUsed,
		"commandType": result.CommandType,
		"timestamp":   h.timestamp(),
	})
}

// ProcessVoice handles voice-transcribed commands. The transcript is trimmed
// of leading filler tokens before routing; audioData itself is never decoded
// server-side (speech recognition stays in the browser).
func (h *Handler) ProcessVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := trimFiller(req.Command)
	if cmd == "" {
		h.Error(w, http.StatusBadRequest, "command is required")
		return
	}

	result := h.route(r, cmd, "", config.ModeGeneral)

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"response":  result.Response,
		"inputType": "voice",
		"timestamp": h.timestamp(),
	})
}

// route dispatches through the command router and appends both sides of the
// exchange to the transcript log.
func (h *Handler) route(r *http.Request, cmd, userID, mode string) command.Result {
	if userID == "" {
		userID = config.DefaultUserID
	}
	if !config.ValidMode(mode) {
		mode = config.ModeGeneral
	}

	result := h.router.Route(r.Context(), cmd, userID, mode)

	reqID := middleware.GetReqID(r.Context())
	h.logger.Info("command routed",
		"request_id", reqID,
		"user_id", userID,
		"command_type", result.CommandType,
		"api_used", result.APIUsed,
	)

	now := h.now()
	go h.appendTranscript(userID, cmd, result, now)

	return result
}

func (h *Handler) appendTranscript(userID, cmd string, result command.Result, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries := []store.TranscriptEntry{
		{UserID: userID, Role: "user", Content: cmd, CommandType: result.CommandType, Timestamp: at},
		{UserID: userID, Role: "assistant", Content: result.Response.Message, CommandType: result.CommandType, APIUsed: result.APIUsed, Timestamp: at},
	}
	for _, entry := range entries {
		if err := h.log.Append(ctx, entry); err != nil {
			h.logger.Warn("failed to append transcript entry", "error", err)
		}
	}
}

// trimFiller strips a leading wake word or filler token from a voice
// transcript. The token must be followed by punctuation, a space, or the end
// of the transcript so that words like "umbrella" survive.
func trimFiller(transcript string) string {
	s := strings.TrimSpace(transcript)
	lowered := strings.ToLower(s)
	for _, prefix := range []string{"hey aura", "okay aura", "aura", "um", "uh"} {
		if !strings.HasPrefix(lowered, prefix) {
			continue
		}
		rest := s[len(prefix):]
		if rest != "" && rest[0] != ' ' && rest[0] != ',' && rest[0] != '.' {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(rest, " ,."))
	}
	return s
}
