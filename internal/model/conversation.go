package model

import "strings"

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Reasoning markers wrapped around the assistant's reasoning block
const (
	ThinkOpen  = "<think>"
	ThinkClose = "</think>"
)

// DefaultSystemMessage is the instruction carried by every conversation
const DefaultSystemMessage = "You are Phi, an AI assistant trained to provide detailed reasoning before answering questions. You excel at chain-of-thought reasoning, memory integration, and reflective analysis."

// Message is a single turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a system/user/assistant exchange tagged with its source type
type Conversation struct {
	Messages   []Message  `json:"messages"`
	DataSource DataSource `json:"data_source"`
}

// BuildConversation assembles the fixed three-message shape. The assistant
// content embeds the reasoning between think markers, then a blank line,
// then the answer.
func BuildConversation(question, reasoning, answer string, source DataSource, systemMessage string) Conversation {
	var assistant strings.Builder
	assistant.Grow(len(reasoning) + len(answer) + 20)
	assistant.WriteString(ThinkOpen)
	assistant.WriteString("\n")
	assistant.WriteString(reasoning)
	assistant.WriteString("\n")
	assistant.WriteString(ThinkClose)
	assistant.WriteString("\n\n")
	assistant.WriteString(answer)

	return Conversation{
		Messages: []Message{
			{Role: RoleSystem, Content: systemMessage},
			{Role: RoleUser, Content: question},
			{Role: RoleAssistant, Content: assistant.String()},
		},
		DataSource: source,
	}
}

// Complete reports whether the conversation has the system, user and
// assistant turns
func (c Conversation) Complete() bool {
	return len(c.Messages) == 3
}

// AssistantContent returns the assistant turn, or "" when the conversation
// does not have three messages.
func (c Conversation) AssistantContent() string {
	if len(c.Messages) < 3 {
		return ""
	}
	return c.Messages[2].Content
}

// Source returns the data source tag, or "unknown" when missing
func (c Conversation) Source() string {
	if c.DataSource == "" {
		return "unknown"
	}
	return string(c.DataSource)
}
