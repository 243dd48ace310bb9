package gossip

import (
	"errors"

	"github.com/vesna-dev/vesna-go/pkg/io"
)

// Message kind tags on the wire.
const (
	messageKindIntent byte = 1
	messageKindTopic  byte = 2
)

// MaxIntentSize is the maximum length of an encoded intent accepted in a
// gossip message.
const MaxIntentSize = 0x400000

// Message is the request envelope of the gossip service. Exactly one of the
// fields is set.
type Message struct {
	Intent    *IntentMessage
	Subscribe *SubscribeMessage
}

// IntentMessage carries an encoded signed intent to be gossiped under the
// given topic.
type IntentMessage struct {
	Data  []byte
	Topic string
}

// SubscribeMessage asks the gossip node to join the given topic.
type SubscribeMessage struct {
	Topic string
}

// Response is the gossip node's answer to any message.
type Response struct {
	Result string
}

// NewIntentMessage wraps an encoded intent and a topic into a Message.
func NewIntentMessage(data []byte, topic string) *Message {
	return &Message{Intent: &IntentMessage{Data: data, Topic: topic}}
}

// NewSubscribeMessage wraps a topic subscription into a Message.
func NewSubscribeMessage(topic string) *Message {
	return &Message{Subscribe: &SubscribeMessage{Topic: topic}}
}

// EncodeBinary implements the io.Serializable interface.
func (m *Message) EncodeBinary(w *io.BinWriter) {
	switch {
	case m.Intent != nil && m.Subscribe == nil:
		w.WriteB(messageKindIntent)
		m.Intent.EncodeBinary(w)
	case m.Subscribe != nil && m.Intent == nil:
		w.WriteB(messageKindTopic)
		m.Subscribe.EncodeBinary(w)
	default:
		w.Err = errors.New("message must carry exactly one payload")
	}
}

// DecodeBinary implements the io.Serializable interface.
func (m *Message) DecodeBinary(r *io.BinReader) {
	m.Intent = nil
	m.Subscribe = nil
	switch kind := r.ReadB(); kind {
	case messageKindIntent:
		m.Intent = new(IntentMessage)
		m.Intent.DecodeBinary(r)
	case messageKindTopic:
		m.Subscribe = new(SubscribeMessage)
		m.Subscribe.DecodeBinary(r)
	default:
		if r.Err == nil {
			r.Err = errors.New("unknown message kind")
		}
	}
}

// EncodeBinary implements the io.Serializable interface.
func (m *IntentMessage) EncodeBinary(w *io.BinWriter) {
	w.WriteVarBytes(m.Data)
	w.WriteString(m.Topic)
}

// DecodeBinary implements the io.Serializable interface.
func (m *IntentMessage) DecodeBinary(r *io.BinReader) {
	m.Data = r.ReadVarBytes(MaxIntentSize)
	m.Topic = r.ReadString()
}

// EncodeBinary implements the io.Serializable interface.
func (m *SubscribeMessage) EncodeBinary(w *io.BinWriter) {
	w.WriteString(m.Topic)
}

// DecodeBinary implements the io.Serializable interface.
func (m *SubscribeMessage) DecodeBinary(r *io.BinReader) {
	m.Topic = r.ReadString()
}

// EncodeBinary implements the io.Serializable interface.
func (r *Response) EncodeBinary(w *io.BinWriter) {
	w.WriteString(r.Result)
}

// DecodeBinary implements the io.Serializable interface.
func (r *Response) DecodeBinary(br *io.BinReader) {
	r.Result = br.ReadString()
}
