// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders a mind-map topic tree as Markdown and previews
// Markdown as HTML.
package markdown

import (
	"strings"

	"github.com/pdiddy/xmind2md/internal/xmind"
	"github.com/pdiddy/xmind2md/pkg/types"
)

// MaxHeadingDepth is the deepest Markdown heading level. Topics below it are
// rendered as nested list items.
const MaxHeadingDepth = 6

// Render walks the tree rooted at root depth-first and returns its Markdown.
// The root is a level-1 heading, its children start at level 2, and topics
// deeper than MaxHeadingDepth become "- " items indented two spaces per
// level. Plain notes follow their topic as a blockquote.
func Render(root *types.Topic) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(singleLine(root.TitleText()))
	b.WriteByte('\n')
	writeNotes(&b, root.Notes)

	type frame struct {
		topic *types.Topic
		depth int
	}

	stack := make([]frame, 0, len(root.Children))
	pushChildren := func(t *types.Topic, depth int) {
		for i := len(t.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{t.Children[i], depth})
		}
	}
	pushChildren(root, 2)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.WriteByte('\n')
		if f.depth <= MaxHeadingDepth {
			b.WriteString(strings.Repeat("#", f.depth))
			b.WriteByte(' ')
		} else {
			b.WriteString(strings.Repeat("  ", f.depth-MaxHeadingDepth-1))
			b.WriteString("- ")
		}
		b.WriteString(singleLine(f.topic.TitleText()))
		b.WriteByte('\n')
		writeNotes(&b, f.topic.Notes)

		pushChildren(f.topic, f.depth+1)
	}

	return b.String()
}

func writeNotes(b *strings.Builder, n *types.Notes) {
	text, ok := xmind.PlainNotes(n)
	if !ok {
		return
	}
	b.WriteString("\n> ")
	b.WriteString(strings.ReplaceAll(text, "\n", "\n> "))
	b.WriteString("\n\n")
}

// singleLine keeps a title on one heading line.
func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
