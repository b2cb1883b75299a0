package domain

type CommandName string

const (
	CommandAsk          CommandName = "ask"
	CommandStartSession CommandName = "start-session"
	CommandStopSession  CommandName = "stop-session"
)

// Interaction is an invoked command as delivered by the chat platform.
type Interaction struct {
	ID          string
	Command     CommandName
	PrincipalID PrincipalID
	Username    string
	ChannelID   string
	Query       string
	// Handle is the platform-specific value the gateway needs to answer this interaction.
	Handle any
}

type InboundMessage struct {
	ID        string
	AuthorID  PrincipalID
	AuthorBot bool
	ChannelID string
	Content   string
}
