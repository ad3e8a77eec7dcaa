// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared between the conversion stages
// and the CLI: the mind-map topic tree and the stage configuration structs.
package types

// Topic is a node of a mind-map tree. The root of a document is a Topic like
// any other; only its rendering differs.
//
// Optional fields are pointers so that "absent" stays distinguishable from
// "present but empty". A nil Title renders as the empty string.
type Topic struct {
	// Title is the topic text, possibly spanning several lines.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Notes holds the plain-text note attached to the topic, if any.
	Notes *Notes `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Children are the attached subtopics in document order.
	Children []*Topic `json:"children,omitempty" yaml:"children,omitempty"`
}

// Notes is the plain note variant of a topic. Rich-text variants are not
// carried.
type Notes struct {
	// Plain is the raw plain-note content, which may contain light HTML.
	Plain *string `json:"plain,omitempty" yaml:"plain,omitempty"`
}

// TitleText returns the topic title, or "" when the title is absent.
func (t *Topic) TitleText() string {
	if t == nil || t.Title == nil {
		return ""
	}
	return *t.Title
}

// Count returns the number of topics in the subtree rooted at t and its
// maximum depth, where t itself is depth 1.
func (t *Topic) Count() (topics, depth int) {
	if t == nil {
		return 0, 0
	}
	type frame struct {
		topic *Topic
		depth int
	}
	stack := []frame{{t, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		topics++
		if f.depth > depth {
			depth = f.depth
		}
		for _, c := range f.topic.Children {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return topics, depth
}

// Text returns a pointer to s. It keeps literal topic construction short.
func Text(s string) *string {
	return &s
}
