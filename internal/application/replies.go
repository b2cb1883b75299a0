package application

// User-facing texts. Internal errors are never shown to users.
const (
	ReplyAccessDenied        = "Access denied."
	ReplyQuotaExhausted      = "Your quota is used up. Ask an administrator for more."
	ReplyTryLater            = "Please try again later."
	ReplyNoResponse          = "No response came back from the model."
	ReplyGenericError        = "Something went wrong. Please try again."
	ReplyHistoryError        = "Could not read this conversation. Please try again."
	ReplySessionCreated      = "Session created."
	ReplySessionCreateFailed = "Could not create a session thread."
	ReplySessionStopped      = "This thread is no longer tracked."
	ReplyNotASession         = "This channel is not an active session."
	ReplyUnknownCommand      = "Unknown command."
	ReplySessionExpired      = "This session has been inactive for a day and is now closed."
)
