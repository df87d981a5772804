package orchestrator

import "strings"

// fallbackRule pairs a trigger substring with a canned reply. Rules are
// checked in order against the lower-cased message; first match wins.
type fallbackRule struct {
	keyword string
	reply   string
}

var fallbackRules = []fallbackRule{
	{"hello", "Hi there! I'm AURA. How can I help you today?"},
	{"hi", "Hello! What can I do for you?"},
	{"how are you", "I'm doing great, thanks for asking. What's on your mind?"},
	{"thank", "You're welcome! Anything else I can help with?"},
	{"help", "I can start a 40-minute focus session, scan documents, or just chat. What would you like?"},
	{"time", "I can keep time for you. Say 'start session' to begin a 40-minute focus countdown."},
	{"tired", "Sounds like you could use a break. Want to try a short breathing exercise?"},
	{"bye", "Goodbye! I'll be here when you need me."},
}

const fallbackDefault = "I hear you. Tell me more, or say 'help' to see what I can do."

// localReply produces the offline fallback answer for a message.
func localReply(message string) string {
	lowered := strings.ToLower(message)
	for _, rule := range fallbackRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.reply
		}
	}
	return fallbackDefault
}
