package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/skull-king/internal/protocol"
)

const (
	fieldType    = "type"
	fieldPayload = "payload"
)

// ErrMissingType 消息缺少类型字段
var ErrMissingType = errors.New("消息缺少 type 字段")

// NewMessage 创建一个新消息，payload 以 JSON 形式暂存
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := &protocol.Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 Protobuf 字节（google.protobuf.Struct 信封）
func Encode(m *protocol.Message) ([]byte, error) {
	env := getEnvelope()
	defer putEnvelope(env)

	env.Fields = map[string]*structpb.Value{
		fieldType: structpb.NewStringValue(string(m.Type)),
	}

	if len(m.Payload) > 0 {
		var raw any
		if err := json.Unmarshal(m.Payload, &raw); err != nil {
			return nil, fmt.Errorf("payload 不是合法的 JSON: %w", err)
		}
		v, err := structpb.NewValue(raw)
		if err != nil {
			return nil, err
		}
		env.Fields[fieldPayload] = v
	}

	return proto.Marshal(env)
}

// Decode 从 Protobuf 字节解码消息
func Decode(data []byte) (*protocol.Message, error) {
	env := getEnvelope()
	defer putEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, err
	}

	t, ok := env.Fields[fieldType]
	if !ok || t.GetStringValue() == "" {
		return nil, ErrMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(t.GetStringValue())
	if p, ok := env.Fields[fieldPayload]; ok {
		payload, err := p.MarshalJSON()
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = payload
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return nil, fmt.Errorf("%s 消息缺少 payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}
