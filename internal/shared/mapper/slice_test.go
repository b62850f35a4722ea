package mapper

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type source struct{ N int }

type target struct{ S string }

func TestMapSlicePtr(t *testing.T) {
	toTarget := func(s *source) *target {
		if s.N < 0 {
			return nil
		}
		return &target{S: strconv.Itoa(s.N)}
	}

	tests := []struct {
		name  string
		input []*source
		want  []string
	}{
		{"nil input", nil, []string{}},
		{"empty input", []*source{}, []string{}},
		{"maps in order", []*source{{N: 1}, {N: 2}}, []string{"1", "2"}},
		{"skips nil input", []*source{{N: 1}, nil, {N: 3}}, []string{"1", "3"}},
		{"skips nil output", []*source{{N: -1}, {N: 4}}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapSlicePtr(tt.input, toTarget)
			require.NotNil(t, got)
			values := make([]string, 0, len(got))
			for _, g := range got {
				values = append(values, g.S)
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestMapSlicePtr_EncodesEmptyAsArray(t *testing.T) {
	raw, err := json.Marshal(MapSlicePtr[source, target](nil, func(s *source) *target { return &target{} }))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
