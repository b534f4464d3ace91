package enums

type MessageType string

const (
	MessageTypeUser       MessageType = "user"
	MessageTypeSystem     MessageType = "system"
	MessageTypeAIAnalysis MessageType = "ai_analysis"
)

// SystemSenderID is the sender recorded for messages not authored by a
// match member (match greetings, compatibility analyses).
const SystemSenderID int64 = 0
