package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBookRequestCategory(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantID  *int64
	}{
		{name: "Absent", body: `{"title": "Emma"}`},
		{name: "Null", body: `{"category": null}`, wantSet: true},
		{name: "Value", body: `{"category": 4}`, wantSet: true, wantID: ptr(int64(4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateBookRequest

			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.CategoryID.Set)
			assert.Equal(t, tt.wantID, req.CategoryID.Value)
		})
	}

	t.Run("Not A Number", func(t *testing.T) {
		var req UpdateBookRequest
		assert.Error(t, json.Unmarshal([]byte(`{"category": "fiction"}`), &req))
	})
}

func TestDateRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1965-08-01"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1965-08-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"08/01/1965"`), &d))
}

func ptr[T any](v T) *T { return &v }
