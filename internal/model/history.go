package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidMessage = errors.New("history entry must be a string or an object with role and content")

// HistoryMessage is a chat history entry: either a plain string or a
// role-tagged message. Plain strings carry an empty Role and Plain=true.
type HistoryMessage struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
	Plain   bool   `json:"-"`
}

// PlainMessage wraps a raw string entry
func PlainMessage(s string) HistoryMessage {
	return HistoryMessage{Content: s, Plain: true}
}

// RoleMessage builds a role-tagged entry
func RoleMessage(role, content string) HistoryMessage {
	return HistoryMessage{Role: role, Content: content}
}

// FromUser reports whether the entry should be scanned for themes
func (m HistoryMessage) FromUser() bool {
	return m.Plain || m.Role == "user"
}

func (m *HistoryMessage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errInvalidMessage
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = PlainMessage(s)
		return nil
	case '{':
		var obj struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*m = RoleMessage(obj.Role, obj.Content)
		return nil
	}
	return errInvalidMessage
}

func (m HistoryMessage) MarshalJSON() ([]byte, error) {
	if m.Plain {
		return json.Marshal(m.Content)
	}
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{m.Role, m.Content})
}
