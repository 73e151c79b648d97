package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/fact"
)

func TestFactPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload *FactPayload
		wantErr bool
	}{
		{
			name:    "valid fact",
			payload: NewFactPayload(testFact()),
			wantErr: false,
		},
		{
			name:    "empty predicate",
			payload: NewFactPayload(fact.Fact{}),
			wantErr: true,
		},
		{
			name: "object argument without a name",
			payload: NewFactPayload(fact.New("qrgeom::body-pose",
				fact.Argument{Kind: fact.KindObject, Type: "qrgeom::box"},
				fact.Literal(1.0))),
			wantErr: true,
		},
		{
			name: "unknown argument kind",
			payload: NewFactPayload(fact.New("qrgeom::body-pose",
				fact.Argument{Kind: "mystery"})),
			wantErr: true,
		},
		{
			name: "nil literal is allowed",
			payload: NewFactPayload(fact.New("sim::gravity",
				fact.Literal(nil))),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResultPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload *ResultPayload
		wantErr bool
	}{
		{
			name:    "accepted",
			payload: &ResultPayload{FactID: "1", Status: StatusAccepted},
			wantErr: false,
		},
		{
			name: "rejected with variant",
			payload: &ResultPayload{
				FactID:  "2",
				Status:  StatusRejected,
				Variant: VariantShapeMismatch,
				Detail:  "length 2, expected 6",
			},
			wantErr: false,
		},
		{
			name:    "rejected without variant",
			payload: &ResultPayload{FactID: "3", Status: StatusRejected},
			wantErr: true,
		},
		{
			name:    "accepted with variant",
			payload: &ResultPayload{FactID: "4", Status: StatusAccepted, Variant: VariantArity},
			wantErr: true,
		},
		{
			name:    "unknown status",
			payload: &ResultPayload{FactID: "5", Status: "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResultPayload_JSONRoundTrip(t *testing.T) {
	original := &ResultPayload{
		FactID:    "envelope-42",
		Fact:      testFact(),
		Status:    StatusRejected,
		Variant:   VariantArity,
		Detail:    "expected 2 arguments, got 3",
		Validated: 1700000000000,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ResultPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestRegisterPayload_Replaces(t *testing.T) {
	custom := Type{Domain: "lisdf", Category: "test", Version: "v1"}
	RegisterPayload(custom, func() Payload { return &FactPayload{} })
	RegisterPayload(custom, func() Payload { return &ResultPayload{} })

	p := createPayload(custom)
	require.NotNil(t, p)
	_, ok := p.(*ResultPayload)
	assert.True(t, ok)
}
