package command

import (
	"context"
	"fmt"

	"aura/internal/timer"
)

// cloneActivities is the fixed ordered feed shown while the clone "works".
var cloneActivities = []string{
	"Sorting your unread messages by priority",
	"Drafting replies to two routine emails",
	"Summarizing today's notes into action items",
	"Organizing tomorrow's schedule",
	"Archiving completed tasks",
}

var safeModeSuggestions = []string{
	"Breathe in for 4 seconds, hold for 4, out for 6, repeat five times",
	"Drop your shoulders and unclench your jaw",
	"Name five things you can see around you",
	"Take a sip of water before your next thought",
}

func (r *Router) handleSessionStart(_ context.Context, _, userID, _ string) Response {
	res := r.registry.Start(userID)
	return fromTimerResult(res)
}

func (r *Router) handleTimerStatus(_ context.Context, _, userID, _ string) Response {
	res := r.registry.Poll(userID)
	resp := fromTimerResult(res)
	if res.Status == timer.StatusCloneActivated {
		resp.CloneActivities = cloneActivities
		resp.VoiceMessage = "You're all done. I've activated your clone to handle the small stuff."
	}
	return resp
}

func (r *Router) handleSafeMode(_ context.Context, _, _, _ string) Response {
	return Response{
		Status:       "safe_mode_active",
		Message:      "Let's slow things down for a moment. You're safe, and nothing here is urgent.",
		VoiceMessage: "Okay, let's take a breath together. In... and out. You're doing fine.",
		Suggestions:  safeModeSuggestions,
	}
}

func (r *Router) handleClone(_ context.Context, _, _, _ string) Response {
	return Response{
		Status:          "ai_clone_activated",
		Message:         "Clone activated. I'll simulate handling your background tasks while you focus.",
		VoiceMessage:    "Your clone is on it. Background tasks are covered.",
		CloneActivities: cloneActivities,
	}
}

func (r *Router) handleScan(_ context.Context, _, _, _ string) Response {
	return Response{
		Status:       "scan_mode_ready",
		Message:      "Scan mode ready. Point the camera at a document or upload an image and I'll take a look.",
		VoiceMessage: "Ready to scan. Show me the document.",
	}
}

func (r *Router) handleModeSwitch(_ context.Context, lowered, _, _ string) Response {
	mode := extractMode(lowered)
	return Response{
		Status:       fmt.Sprintf("%s_mode_active", mode),
		Message:      fmt.Sprintf("Switched to %s mode.", mode),
		VoiceMessage: fmt.Sprintf("Okay, %s mode it is.", mode),
	}
}

// fromTimerResult maps a registry result onto the client response shape.
// Progress is carried for every result that describes a session, even at 0%.
func fromTimerResult(res timer.Result) Response {
	resp := Response{
		Status:        res.Status,
		Message:       res.Message,
		VoiceMessage:  res.Message,
		SessionNumber: res.SessionNumber,
		TimeLeft:      res.TimeLeft,
	}
	if res.Status != timer.StatusNoSession {
		p := res.Progress
		resp.Progress = &p
	}
	return resp
}
