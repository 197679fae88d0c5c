package model

import (
	"time"

	"github.com/deppfellow/daca-chatbot/internal/validation"
	"github.com/google/uuid"
)

// Metadata is generated per message.
type Metadata struct {
	Timestamp time.Time `json:"timestamp,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
}

// NewMetadata returns Metadata stamped with the current UTC time and a fresh
// session id.
func NewMetadata() Metadata {
	m := Metadata{}
	m.SetDefaults()
	return m
}

// SetDefaults fills a zero timestamp and an empty session id.
func (m *Metadata) SetDefaults() {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if m.SessionID == "" {
		m.SessionID = uuid.NewString()
	}
}

// Message is the chat input. Blank text is accepted here and rejected by the
// chat service.
type Message struct {
	UserID   string   `json:"user_id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
	Tags     []string `json:"tags,omitempty"`
}

// NewMessage builds a Message from its data representation.
func NewMessage(raw map[string]any) (*Message, error) {
	msg := &Message{}
	if err := validation.Decode(raw, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *Message) Validate() error {
	return validation.Struct(m)
}

// Response is the chat output.
type Response struct {
	UserID   string   `json:"user_id"`
	Reply    string   `json:"reply"`
	Metadata Metadata `json:"metadata"`
}

// Welcome is returned by the root endpoint.
type Welcome struct {
	Message string `json:"message"`
}
