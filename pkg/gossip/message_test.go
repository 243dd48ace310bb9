package gossip

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/testserdes"
)

func TestMessageSerializable(t *testing.T) {
	t.Run("intent", func(t *testing.T) {
		m := NewIntentMessage([]byte{0xde, 0xad, 0xbe, 0xef}, "asset_v1")
		testserdes.EncodeDecodeBinary(t, m, new(Message))
	})
	t.Run("subscribe", func(t *testing.T) {
		m := NewSubscribeMessage("asset_v1")
		testserdes.EncodeDecodeBinary(t, m, new(Message))
	})
	t.Run("empty envelope", func(t *testing.T) {
		_, err := testserdes.EncodeBinary(new(Message))
		require.Error(t, err)
	})
	t.Run("both payloads", func(t *testing.T) {
		m := NewIntentMessage([]byte{1}, "t")
		m.Subscribe = &SubscribeMessage{Topic: "t"}
		_, err := testserdes.EncodeBinary(m)
		require.Error(t, err)
	})
	t.Run("unknown kind", func(t *testing.T) {
		require.Error(t, testserdes.DecodeBinary([]byte{0xff}, new(Message)))
	})
}

func TestBinaryCodec(t *testing.T) {
	var c BinaryCodec
	require.Equal(t, codecName, c.Name())

	msg := NewIntentMessage([]byte("intent bytes"), "topic")
	data, err := c.Marshal(msg)
	require.NoError(t, err)

	got := new(Message)
	require.NoError(t, c.Unmarshal(data, got))
	require.Equal(t, msg, got)

	_, err = c.Marshal(42)
	require.Error(t, err)
	require.Error(t, c.Unmarshal(data, 42))
}

func TestResponseSerializable(t *testing.T) {
	testserdes.EncodeDecodeBinary(t, &Response{Result: "ok"}, new(Response))
}
