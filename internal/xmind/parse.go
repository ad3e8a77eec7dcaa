// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xmind

import (
	"encoding/json"
	"log/slog"

	"github.com/pdiddy/xmind2md/pkg/types"
)

// ParseContent parses a content.json payload into its root topic. The
// payload is either a list of sheets whose first element has a rootTopic,
// or a single object with a rootTopic.
//
// Missing or wrongly typed optional fields (title, notes, children) are
// treated as absent. A rootTopic or attached child that is not an object
// cannot form a topic and is reported as ErrMalformedPayload.
func ParseContent(data []byte) (*types.Topic, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}

	var (
		root any
		ok   bool
	)
	switch v := doc.(type) {
	case []any:
		if len(v) == 0 {
			return nil, malformed("empty sheet list")
		}
		first, isObj := v[0].(map[string]any)
		if isObj {
			root, ok = first["rootTopic"]
		}
	case map[string]any:
		root, ok = v["rootTopic"]
	}
	if !ok {
		return nil, malformed("missing rootTopic")
	}

	topic, err := buildTree(root)
	if err != nil {
		return nil, err
	}

	count, depth := topic.Count()
	slog.Debug("parsed topic tree", "topics", count, "depth", depth)
	return topic, nil
}

// buildTree materializes a decoded rootTopic value. It walks with an explicit
// stack so deeply nested maps cannot exhaust the goroutine stack.
func buildTree(v any) (*types.Topic, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, malformed("rootTopic is %s, want object", jsonKind(v))
	}

	type pending struct {
		obj   map[string]any
		topic *types.Topic
	}

	root := &types.Topic{}
	stack := []pending{{obj, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p.topic.Title = stringField(p.obj, "title")
		p.topic.Notes = notesField(p.obj)

		for i, c := range attached(p.obj) {
			childObj, ok := c.(map[string]any)
			if !ok {
				return nil, malformed("attached topic %d is %s, want object", i, jsonKind(c))
			}
			child := &types.Topic{}
			p.topic.Children = append(p.topic.Children, child)
			stack = append(stack, pending{childObj, child})
		}
	}
	return root, nil
}

func stringField(obj map[string]any, key string) *string {
	s, ok := obj[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// notesField reads notes.plain.content. Other note variants are ignored.
func notesField(obj map[string]any) *types.Notes {
	notes, ok := obj["notes"].(map[string]any)
	if !ok {
		return nil
	}
	n := &types.Notes{}
	if plain, ok := notes["plain"].(map[string]any); ok {
		n.Plain = stringField(plain, "content")
	}
	return n
}

// attached returns children.attached. Other relation kinds such as detached
// or summary topics are ignored.
func attached(obj map[string]any) []any {
	children, ok := obj["children"].(map[string]any)
	if !ok {
		return nil
	}
	list, _ := children["attached"].([]any)
	return list
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
