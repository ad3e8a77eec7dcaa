// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xmind

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/xmind2md/pkg/types"
)

func TestParseContent(t *testing.T) {
	text := types.Text

	tests := []struct {
		name  string
		input string
		want  *types.Topic
	}{
		{
			name:  "sheet list shape",
			input: `[{"id":"s1","rootTopic":{"title":"Plan"}},{"rootTopic":{"title":"Second"}}]`,
			want:  &types.Topic{Title: text("Plan")},
		},
		{
			name:  "object shape",
			input: `{"rootTopic":{"title":"Plan"}}`,
			want:  &types.Topic{Title: text("Plan")},
		},
		{
			name:  "all fields absent",
			input: `{"rootTopic":{}}`,
			want:  &types.Topic{},
		},
		{
			name: "children keep document order",
			input: `{"rootTopic":{"title":"R","children":{"attached":[
				{"title":"A","children":{"attached":[{"title":"A1"},{"title":"A2"}]}},
				{"title":"B"}
			]}}}`,
			want: &types.Topic{
				Title: text("R"),
				Children: []*types.Topic{
					{Title: text("A"), Children: []*types.Topic{{Title: text("A1")}, {Title: text("A2")}}},
					{Title: text("B")},
				},
			},
		},
		{
			name:  "plain notes",
			input: `{"rootTopic":{"notes":{"plain":{"content":"hello"},"realHTML":{"content":"<p>hello</p>"}}}}`,
			want:  &types.Topic{Notes: &types.Notes{Plain: text("hello")}},
		},
		{
			name:  "notes without plain variant",
			input: `{"rootTopic":{"notes":{"html":{"content":{}}}}}`,
			want:  &types.Topic{Notes: &types.Notes{}},
		},
		{
			name:  "detached children ignored",
			input: `{"rootTopic":{"children":{"detached":[{"title":"floating"}],"attached":[{"title":"kept"}]}}}`,
			want:  &types.Topic{Children: []*types.Topic{{Title: text("kept")}}},
		},
		{
			name:  "wrong typed fields are absent",
			input: `{"rootTopic":{"title":42,"notes":"text","children":{"attached":{"title":"x"}}}}`,
			want:  &types.Topic{},
		},
		{
			name:  "null fields are absent",
			input: `{"rootTopic":{"title":null,"notes":null,"children":null}}`,
			want:  &types.Topic{},
		},
		{
			name:  "empty title is present",
			input: `{"rootTopic":{"title":""}}`,
			want:  &types.Topic{Title: text("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContent([]byte(tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseContent() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseContentMalformed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"invalid json", `{"rootTopic":`, "invalid JSON"},
		{"empty sheet list", `[]`, "empty sheet list"},
		{"object without rootTopic", `{"sheets":[]}`, "missing rootTopic"},
		{"sheet without rootTopic", `[{"title":"Sheet"}]`, "missing rootTopic"},
		{"sheet list of strings", `["a"]`, "missing rootTopic"},
		{"scalar document", `"content"`, "missing rootTopic"},
		{"rootTopic is array", `{"rootTopic":[]}`, "rootTopic is array"},
		{"rootTopic is null", `{"rootTopic":null}`, "rootTopic is null"},
		{"attached element not an object", `{"rootTopic":{"children":{"attached":["x"]}}}`, "attached topic 0 is string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent([]byte(tt.input))
			require.ErrorIs(t, err, ErrMalformedPayload)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseContentDeepTree(t *testing.T) {
	const depth = 2000
	input := `{"rootTopic":` +
		strings.Repeat(`{"title":"n","children":{"attached":[`, depth) +
		`{"title":"leaf"}` +
		strings.Repeat(`]}}`, depth) +
		`}`

	root, err := ParseContent([]byte(input))
	require.NoError(t, err)

	count, maxDepth := root.Count()
	assert.Equal(t, depth+1, count)
	assert.Equal(t, depth+1, maxDepth)
}
