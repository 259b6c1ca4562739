package common

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var req EditRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"filename":"a.png","adjustments":{"exposure":1.5}}`), &req))

	assert.Equal(t, "a.png", req.Filename)
	assert.Equal(t, json.Number("1.5"), req.Adjustments["exposure"])
}

func TestDecodeJSONRejects(t *testing.T) {
	for _, body := range []string{``, `{`, `{"filename":"a.png"} {"x":1}`, `[1,2]`} {
		var req EditRequest
		assert.Error(t, DecodeJSON(strings.NewReader(body), &req), "body %q", body)
	}
}

func TestNumberToFloat(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    float64
		wantErr bool
	}{
		{json.Number("1.25"), 1.25, false},
		{json.Number("0"), 0, false},
		{2.5, 2.5, false},
		{3, 3, false},
		{int64(4), 4, false},
		{"1.5", 0, true},
		{nil, 0, true},
		{true, 0, true},
		{json.Number("1e400"), 0, true},
	}

	for _, tt := range tests {
		got, err := NumberToFloat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNumberToInt(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    int
		wantErr bool
	}{
		{json.Number("10"), 10, false},
		{json.Number("-5"), -5, false},
		{json.Number("3.9"), 3, false},
		{json.Number("-3.9"), -3, false},
		{" 42 ", 42, false},
		{"4.5", 0, true},
		{"abc", 0, true},
		{json.Number("1e12"), 0, true},
		{nil, 0, true},
	}

	for _, tt := range tests {
		got, err := NumberToInt(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
