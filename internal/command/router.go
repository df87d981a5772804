// Package command inspects inbound free text for built-in triggers and
// dispatches to the matching handler, falling back to the response
// orchestrator for ordinary conversation.
package command

import (
	"context"
	"log/slog"
	"strings"

	"aura/internal/config"
	"aura/internal/timer"
)

// Command types reported alongside each response.
const (
	TypeTimer        = "timer"
	TypeTimerStatus  = "timer_status"
	TypeSafeMode     = "safe_mode"
	TypeClone        = "clone"
	TypeScan         = "scan"
	TypeModeSwitch   = "mode_switch"
	TypeConversation = "conversation"
)

// Response is the structure the client uses to drive its UI. Only Message is
// always present. Progress is a pointer so a session sitting at 0% still
// serializes instead of vanishing under omitempty.
type Response struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	VoiceMessage    string   `json:"voiceMessage,omitempty"`
	SessionNumber   int      `json:"sessionNumber,omitempty"`
	TimeLeft        string   `json:"timeLeft,omitempty"`
	Progress        *int     `json:"progress,omitempty"`
	CloneActivities []string `json:"cloneActivities,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

// Result is a routed response plus routing metadata for the HTTP envelope.
type Result struct {
	Response    Response
	CommandType string
	APIUsed     string
}

// Responder produces conversational replies when no trigger matches.
type Responder interface {
	GetResponse(ctx context.Context, message, mode string) (text, apiUsed string)
}

// rule pairs a trigger predicate with its handler. Rules are evaluated in
// declaration order; first match wins.
type rule struct {
	commandType string
	match       func(lowered string) bool
	handle      func(ctx context.Context, lowered, userID, mode string) Response
}

// Router dispatches commands across the ordered trigger rules.
type Router struct {
	registry  *timer.Registry
	responder Responder
	logger    *slog.Logger
	rules     []rule
}

// NewRouter creates a Router over the given timer registry and responder.
func NewRouter(registry *timer.Registry, responder Responder, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		registry:  registry,
		responder: responder,
		logger:    logger,
	}
	// Precedence is fixed: session start, timer status, safe mode, clone,
	// scan intent, mode switch.
	r.rules = []rule{
		{TypeTimer, matchAny(sessionStartTriggers), r.handleSessionStart},
		{TypeTimerStatus, matchAny(timerStatusTriggers), r.handleTimerStatus},
		{TypeSafeMode, matchAny(safeModeTriggers), r.handleSafeMode},
		{TypeClone, matchAny(cloneTriggers), r.handleClone},
		{TypeScan, matchAny(scanTriggers), r.handleScan},
		{TypeModeSwitch, matchModeSwitch, r.handleModeSwitch},
	}
	return r
}

// Route resolves a command for a user. Commands that match no trigger are
// delegated to the responder and tagged as conversation.
func (r *Router) Route(ctx context.Context, command, userID, mode string) Result {
	lowered := strings.ToLower(strings.TrimSpace(command))

	for _, rule := range r.rules {
		if rule.match(lowered) {
			r.logger.Info("command matched", "type", rule.commandType, "user_id", userID)
			return Result{
				Response:    rule.handle(ctx, lowered, userID, mode),
				CommandType: rule.commandType,
				APIUsed:     "builtin",
			}
		}
	}

	text, apiUsed := r.responder.GetResponse(ctx, command, mode)
	return Result{
		Response: Response{
			Status:       "conversation",
			Message:      text,
			VoiceMessage: text,
		},
		CommandType: TypeConversation,
		APIUsed:     apiUsed,
	}
}

func matchAny(triggers []string) func(string) bool {
	return func(lowered string) bool {
		for _, t := range triggers {
			if strings.Contains(lowered, t) {
				return true
			}
		}
		return false
	}
}

var sessionStartTriggers = []string{
	"start session", "start work", "begin session", "start focus",
	"start the timer", "start timer", "start my session",
}

var timerStatusTriggers = []string{
	"time left", "how much time", "timer status", "session status",
	"check timer", "check the timer", "remaining time",
}

var safeModeTriggers = []string{
	"stress", "overwhelm", "anxious", "anxiety", "panic", "calm down",
	"safe mode",
}

var cloneTriggers = []string{
	"clone", "background task", "take over my tasks", "work for me",
}

var scanTriggers = []string{
	"scan", "analyze this document", "read this document", "look at this paper",
}

func matchModeSwitch(lowered string) bool {
	return extractMode(lowered) != ""
}

// extractMode returns the target mode named in a mode-switch phrase, or "".
func extractMode(lowered string) string {
	for _, mode := range []string{config.ModeStudy, config.ModeWork, config.ModeRelax, config.ModeGeneral} {
		if strings.Contains(lowered, mode+" mode") || strings.Contains(lowered, "switch to "+mode) {
			return mode
		}
	}
	return ""
}
