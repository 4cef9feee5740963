package ai

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem is an instruction message that frames the conversation.
	RoleSystem Role = "system"
	// RoleUser is a message from the human user.
	RoleUser Role = "user"
	// RoleAssistant is a prior response from the model.
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn passed to a ChatModel.
type Message struct {
	Role    Role
	Content string
}

// FunctionSchema declares a function the model may call. It mirrors the
// OpenAI function-calling schema: Parameters is a JSON Schema object.
type FunctionSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}
