// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xmind

import (
	"strings"

	"github.com/pdiddy/xmind2md/pkg/types"
)

// entities are decoded one after another in this order. Each replacement
// runs once, so "&amp;lt;" ends as "&lt;" while "&amp;quot;" ends as a
// quote because &quot; is decoded after &amp;.
var entities = [...]struct{ from, to string }{
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", `"`},
}

func decodeEntities(s string) string {
	for _, e := range entities {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	return s
}

// PlainNotes returns the plain-text note of a topic with tags stripped and
// the common entities decoded. It reports false when there is no plain note
// or nothing but whitespace remains.
func PlainNotes(n *types.Notes) (string, bool) {
	if n == nil || n.Plain == nil {
		return "", false
	}
	s := strings.TrimSpace(*n.Plain)
	if s == "" {
		return "", false
	}

	s = strings.TrimSpace(decodeEntities(StripTags(s)))
	if s == "" {
		return "", false
	}
	return s, true
}

// StripTags drops everything from a '<' up to and including the next '>'.
// It does not understand nesting, quoting or comments: a stray '>' outside
// a tag is dropped and an unterminated '<' swallows the rest of the input.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
