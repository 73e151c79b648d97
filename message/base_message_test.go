package message

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/fact"
)

func testFact() fact.Fact {
	return fact.New("qrgeom::body-pose",
		fact.ObjectRef("crate", "qrgeom::box"),
		fact.Literal([]float64{0.4, 0, 0.9, 0, 0, 0}))
}

func TestNewBaseMessage(t *testing.T) {
	payload := NewFactPayload(testFact())
	msg := NewBaseMessage(FactSubmitted, payload, "test-service")

	assert.NotEmpty(t, msg.ID())
	assert.Equal(t, FactSubmitted, msg.Type())
	assert.Equal(t, payload, msg.Payload())
	assert.Equal(t, "test-service", msg.Meta().Source())
	assert.WithinDuration(t, time.Now(), msg.Meta().CreatedAt(), time.Second)
}

func TestNewBaseMessage_WithTime(t *testing.T) {
	past := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	msg := NewBaseMessage(FactSubmitted, NewFactPayload(testFact()), "test-service", WithTime(past))

	assert.Equal(t, past, msg.Meta().CreatedAt())
	assert.Equal(t, "test-service", msg.Meta().Source())
}

func TestBaseMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     *BaseMessage
		wantErr bool
	}{
		{
			name:    "valid message",
			msg:     NewBaseMessage(FactSubmitted, NewFactPayload(testFact()), "test"),
			wantErr: false,
		},
		{
			name:    "invalid type",
			msg:     NewBaseMessage(Type{Domain: "lisdf"}, NewFactPayload(testFact()), "test"),
			wantErr: true,
		},
		{
			name:    "nil payload",
			msg:     NewBaseMessage(FactSubmitted, nil, "test"),
			wantErr: true,
		},
		{
			name:    "invalid payload",
			msg:     NewBaseMessage(FactSubmitted, NewFactPayload(fact.Fact{}), "test"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseMessage_JSONRoundTrip(t *testing.T) {
	original := NewBaseMessage(FactSubmitted, NewFactPayload(testFact()), "round-trip")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded BaseMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID(), decoded.ID())
	assert.Equal(t, original.Type(), decoded.Type())
	assert.Equal(t, original.Meta().Source(), decoded.Meta().Source())
	assert.Equal(t, original.Meta().CreatedAt(), decoded.Meta().CreatedAt())

	payload, ok := decoded.Payload().(*FactPayload)
	require.True(t, ok, "decoded payload should be a *FactPayload")
	assert.Equal(t, "qrgeom::body-pose", payload.Fact.Predicate)
	require.Len(t, payload.Fact.Arguments, 2)
	assert.Equal(t, fact.KindObject, payload.Fact.Arguments[0].Kind)
	assert.Equal(t, "crate", payload.Fact.Arguments[0].Name)
}

func TestBaseMessage_UnmarshalUnregisteredType(t *testing.T) {
	wire := `{"id":"abc","type":{"Domain":"lisdf","Category":"nope","Version":"v9"},"payload":{},"meta":{"source":"x"}}`

	var decoded BaseMessage
	err := json.Unmarshal([]byte(wire), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered payload type")
}

func TestBaseMessage_Hash(t *testing.T) {
	a := NewBaseMessage(FactSubmitted, NewFactPayload(testFact()), "svc")
	b := NewBaseMessage(FactSubmitted, NewFactPayload(testFact()), "svc")

	assert.NotEmpty(t, a.Hash())
	// Same type and payload hash identically regardless of ID or time.
	assert.Equal(t, a.Hash(), b.Hash())

	other := fact.New("sim::gravity", fact.Literal(9.81))
	c := NewBaseMessage(FactSubmitted, NewFactPayload(other), "svc")
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestType_Key(t *testing.T) {
	assert.Equal(t, "lisdf.fact.v1", FactSubmitted.Key())
	assert.Equal(t, "lisdf.result.v1", ValidationResult.Key())
	assert.True(t, FactSubmitted.IsValid())
	assert.False(t, Type{Domain: "lisdf"}.IsValid())
	assert.True(t, FactSubmitted.Equal(Type{Domain: "lisdf", Category: "fact", Version: "v1"}))
}
