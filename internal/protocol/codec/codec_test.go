package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/skull-king/internal/protocol"
)

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	require.NotNil(t, msg)
	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	msg2 := GetMessage()
	require.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestPools_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
		putEnvelope(nil)
	})
}

func TestEnvelopePool_Reset(t *testing.T) {
	t.Parallel()

	env := getEnvelope()
	env.Fields = map[string]*structpb.Value{"type": structpb.NewStringValue("ping")}
	putEnvelope(env)

	env2 := getEnvelope()
	assert.Empty(t, env2.GetFields())
}

func TestEncodeDecode_StatePayload(t *testing.T) {
	t.Parallel()

	in := protocol.StatePayload{
		TableID: "t1",
		Phase:   "putting",
		Round:   3,
		Players: []protocol.PlayerInfo{{ID: "p1", Name: "Alice", Bid: -1, Score: -30}},
		Hand: []protocol.HandCard{
			{Card: protocol.CardInfo{ID: 13, Kind: "suit", Color: "green", Number: 14, Label: "🟩 绿14"}, Legal: true},
		},
		PendingBidders: []string{"Bob"},
	}
	data, err := Encode(MustNewMessage(protocol.MsgState, in))
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)
	defer PutMessage(msg)
	assert.Equal(t, protocol.MsgState, msg.Type)

	out, err := ParsePayload[protocol.StatePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestEncodeDecode_NoPayload(t *testing.T) {
	t.Parallel()

	data, err := Encode(MustNewMessage(protocol.MsgStart, nil))
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgStart, msg.Type)
	assert.Empty(t, msg.Payload)

	_, err = ParsePayload[protocol.BidPayload](msg)
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	env, err := structpb.NewStruct(map[string]any{"payload": map[string]any{"bid": 1}})
	require.NoError(t, err)
	data, err := proto.Marshal(env)
	require.NoError(t, err)
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestEncode_InvalidPayload(t *testing.T) {
	t.Parallel()

	_, err := Encode(&protocol.Message{Type: protocol.MsgBid, Payload: []byte("{")})
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeInvalidBid)
	require.Equal(t, protocol.MsgError, msg.Type)

	p, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidBid, p.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeInvalidBid], p.Message)

	msg = NewErrorMessageWithText(protocol.ErrCodeUnknown, "自定义")
	p, err = ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "自定义", p.Message)
}

func TestEncode_Concurrency(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			data, err := Encode(MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: i % 10}))
			assert.NoError(t, err)
			msg, err := Decode(data)
			assert.NoError(t, err)
			p, err := ParsePayload[protocol.BidPayload](msg)
			assert.NoError(t, err)
			assert.Equal(t, i%10, p.Bid)
			PutMessage(msg)
		})
	}
	wg.Wait()
}
