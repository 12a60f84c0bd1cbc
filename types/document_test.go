package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa-be/types"
)

func TestJSONStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.JSONString
	}{
		{
			name: "plain string",
			raw:  `"Smith et al., 2020"`,
			want: "Smith et al., 2020",
		},
		{
			name: "object kept as compact JSON",
			raw:  `{"authors": "Smith",  "year": 2020}`,
			want: `{"authors":"Smith","year":2020}`,
		},
		{
			name: "number",
			raw:  `42`,
			want: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got types.JSONString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataDecodesMixedReferences(t *testing.T) {
	raw := `{
		"title": "A Paper",
		"references": ["plain ref", {"title": "structured ref"}]
	}`

	var metadata types.DocumentMetadata
	require.NoError(t, json.Unmarshal([]byte(raw), &metadata))

	require.Len(t, metadata.References, 2)
	assert.Equal(t, types.JSONString("plain ref"), metadata.References[0])
	assert.Equal(t, types.JSONString(`{"title":"structured ref"}`), metadata.References[1])
	// Absent fields stay at zero values.
	assert.Empty(t, metadata.Abstract)
	assert.Nil(t, metadata.Sections)
}
