package application

import (
	"sort"
	"strings"

	"github.com/bnema/gptbridge/internal/domain"
)

const (
	DefaultPersona       = "Your name is Samir."
	DefaultEscapeMarker  = "#"
	DefaultHistoryWindow = 32
	sessionLabelLength   = 100
)

type Assembly struct {
	Turns []domain.Turn
	// Label is set when the history holds exactly one user message; the session should be renamed to it.
	Label string
}

// ConversationAssembler rebuilds the prompt for a session from its platform history.
type ConversationAssembler struct {
	persona      string
	escapeMarker string
	window       int
}

func NewConversationAssembler(persona string, escapeMarker string, window int) *ConversationAssembler {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}

	return &ConversationAssembler{
		persona:      persona,
		escapeMarker: escapeMarker,
		window:       window,
	}
}

// IsEscaped reports whether content opts out of the conversation.
func (a *ConversationAssembler) IsEscaped(content string) bool {
	return a.escapeMarker != "" && strings.HasPrefix(content, a.escapeMarker)
}

func (a *ConversationAssembler) Assemble(history []domain.HistoryMessage) Assembly {
	ordered := make([]domain.HistoryMessage, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		left, right := ordered[i], ordered[j]
		if !left.CreatedAt.Equal(right.CreatedAt) {
			return left.CreatedAt.Before(right.CreatedAt)
		}
		return lessMessageID(left.ID, right.ID)
	})

	userTurns := make([]domain.Turn, 0, len(ordered))
	for _, message := range ordered {
		if message.AuthorBot || a.IsEscaped(message.Content) {
			continue
		}
		userTurns = append(userTurns, domain.Turn{Role: domain.RoleUser, Content: message.Content})
	}

	assembly := Assembly{}
	if len(userTurns) == 1 {
		assembly.Label = strings.TrimSpace(truncateRunes(userTurns[0].Content, sessionLabelLength))
	}

	if a.window > 0 && len(userTurns) > a.window {
		userTurns = userTurns[len(userTurns)-a.window:]
	}

	assembly.Turns = make([]domain.Turn, 0, len(userTurns)+1)
	assembly.Turns = append(assembly.Turns, domain.Turn{Role: domain.RoleSystem, Content: a.persona})
	assembly.Turns = append(assembly.Turns, userTurns...)

	return assembly
}

// lessMessageID orders platform ids; numeric snowflakes compare by length first.
func lessMessageID(left, right string) bool {
	if len(left) != len(right) && isDigits(left) && isDigits(right) {
		return len(left) < len(right)
	}
	return left < right
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}

	count := 0
	for index := range value {
		if count == limit {
			return value[:index]
		}
		count++
	}

	return value
}
