package messaging

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/discontent/discontent/pkg/scores"
)

var ErrProtocol = errors.New("protocol error")

// MessageType discriminates the messages crossing the bridge.
type MessageType string

const (
	TypeScoresRequest  MessageType = "ScoresRequest"
	TypeScoresResponse MessageType = "ScoresResponse"
)

// Message is the envelope exchanged between the page context and the
// privileged context: {"type": "...", "data": ...}.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func newMessage(t MessageType, data interface{}) (Message, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s: %w", t, err)
	}
	return Message{Type: t, Data: b}, nil
}

func NewScoresRequestMessage(req scores.ScoresRequest) (Message, error) {
	return newMessage(TypeScoresRequest, req)
}

func NewScoresResponseMessage(resp scores.ScoresResponse) (Message, error) {
	if resp == nil {
		resp = scores.ScoresResponse{}
	}
	return newMessage(TypeScoresResponse, resp)
}

// ScoresRequest decodes the payload of a ScoresRequest message.
func (m Message) ScoresRequest() (scores.ScoresRequest, error) {
	var req scores.ScoresRequest
	if m.Type != TypeScoresRequest {
		return req, fmt.Errorf("%w: expected %s, got %q", ErrProtocol, TypeScoresRequest, m.Type)
	}
	if err := json.Unmarshal(m.Data, &req); err != nil {
		return req, fmt.Errorf("%w: bad %s payload: %v", ErrProtocol, m.Type, err)
	}
	return req, nil
}

// ScoresResponse decodes the payload of a ScoresResponse message. Unknown
// score values are a protocol error.
func (m Message) ScoresResponse() (scores.ScoresResponse, error) {
	if m.Type != TypeScoresResponse {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrProtocol, TypeScoresResponse, m.Type)
	}
	resp := scores.ScoresResponse{}
	if err := json.Unmarshal(m.Data, &resp); err != nil {
		return nil, fmt.Errorf("%w: bad %s payload: %v", ErrProtocol, m.Type, err)
	}
	return resp, nil
}

// Decode reads an envelope off the wire. The type must be a string; the
// payload is kept raw until a typed accessor is called.
func Decode(b []byte) (Message, error) {
	if !gjson.ValidBytes(b) {
		return Message{}, fmt.Errorf("%w: message is not valid JSON", ErrProtocol)
	}
	t := gjson.GetBytes(b, "type")
	if t.Type != gjson.String || t.String() == "" {
		return Message{}, fmt.Errorf("%w: message has no type", ErrProtocol)
	}
	m := Message{Type: MessageType(t.String())}
	if data := gjson.GetBytes(b, "data"); data.Exists() {
		m.Data = json.RawMessage(data.Raw)
	}
	return m, nil
}
