// Package grammar is a small PEG engine and the grammar for catalog
// documents and shopping list items.
package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule is a parsing expression. A rule that fails leaves the cursor and the
// capture list exactly as it found them.
type Rule interface {
	match(s *state) bool
}

// Node is a captured span of the input
type Node struct {
	Rule     string
	Text     string
	Start    int // byte offset, inclusive
	End      int // byte offset, exclusive
	Children []*Node
}

// Find returns the first descendant (depth first) captured by rule, or nil
func (n *Node) Find(rule string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
		if found := c.Find(rule); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all direct children captured by rule
func (n *Node) FindAll(rule string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			out = append(out, c)
		}
	}
	return out
}

// SyntaxError reports the furthest position the engine could not get past
type SyntaxError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: expected %s, found %s",
		e.Line, e.Column, strings.Join(e.Expected, " or "), e.Found)
}

type state struct {
	input    string
	pos      int
	children []*Node

	furthest int
	expected []string
}

// fail records a terminal failure at the current position
func (s *state) fail(label string) {
	switch {
	case s.pos > s.furthest:
		s.furthest = s.pos
		s.expected = append(s.expected[:0], label)
	case s.pos == s.furthest:
		for _, e := range s.expected {
			if e == label {
				return
			}
		}
		s.expected = append(s.expected, label)
	}
}

func (s *state) mark() (int, int) {
	return s.pos, len(s.children)
}

func (s *state) reset(pos, n int) {
	s.pos = pos
	s.children = s.children[:n]
}

// Match runs rule against the whole input. Trailing unmatched input is a
// syntax error.
func Match(rule Rule, input string) (*Node, error) {
	s := &state{input: input, furthest: -1}
	if !Seq(rule, EOI).match(s) {
		return nil, newSyntaxError(input, s.furthest, s.expected)
	}
	return &Node{Text: input, Start: 0, End: len(input), Children: s.children}, nil
}

func newSyntaxError(input string, offset int, expected []string) *SyntaxError {
	if offset < 0 {
		offset = 0
	}
	line, col := Position(input, offset)
	found := "end of input"
	if offset < len(input) {
		r, _ := utf8.DecodeRuneInString(input[offset:])
		found = fmt.Sprintf("%q", r)
	}
	exp := make([]string, len(expected))
	copy(exp, expected)
	return &SyntaxError{Offset: offset, Line: line, Column: col, Expected: exp, Found: found}
}

// Position converts a byte offset into a 1-based line and rune column
func Position(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	prefix := input[:offset]
	line = strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return line, utf8.RuneCountInString(prefix[lineStart:]) + 1
}

type literal struct {
	text  string
	label string
}

// Lit matches text exactly (case-sensitive)
func Lit(text string) Rule {
	return &literal{text: text, label: fmt.Sprintf("%q", text)}
}

func (l *literal) match(s *state) bool {
	if strings.HasPrefix(s.input[s.pos:], l.text) {
		s.pos += len(l.text)
		return true
	}
	s.fail(l.label)
	return false
}

type class struct {
	name string
	pred func(rune) bool
}

// Class matches a single rune accepted by pred
func Class(name string, pred func(rune) bool) Rule {
	return &class{name: name, pred: pred}
}

func (c *class) match(s *state) bool {
	if s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		// an encoded U+FFFD is a rune like any other, a bad byte is not
		if (r != utf8.RuneError || size > 1) && c.pred(r) {
			s.pos += size
			return true
		}
	}
	s.fail(c.name)
	return false
}

type sequence struct {
	rules []Rule
}

// Seq matches all rules in order
func Seq(rules ...Rule) Rule {
	return &sequence{rules: rules}
}

func (q *sequence) match(s *state) bool {
	pos, n := s.mark()
	for _, r := range q.rules {
		if !r.match(s) {
			s.reset(pos, n)
			return false
		}
	}
	return true
}

type choice struct {
	alternatives []Rule
}

// Choice is PEG ordered choice: the first alternative that matches wins and
// later alternatives are never tried.
func Choice(alternatives ...Rule) Rule {
	return &choice{alternatives: alternatives}
}

func (c *choice) match(s *state) bool {
	for _, alt := range c.alternatives {
		if alt.match(s) {
			return true
		}
	}
	return false
}

type optional struct {
	rule Rule
}

// Opt matches rule or nothing
func Opt(rule Rule) Rule {
	return &optional{rule: rule}
}

func (o *optional) match(s *state) bool {
	o.rule.match(s)
	return true
}

type repetition struct {
	rule Rule
	min  int
}

// Many matches rule zero or more times, greedily
func Many(rule Rule) Rule {
	return &repetition{rule: rule}
}

// Many1 matches rule one or more times, greedily
func Many1(rule Rule) Rule {
	return &repetition{rule: rule, min: 1}
}

func (r *repetition) match(s *state) bool {
	pos, n := s.mark()
	count := 0
	for {
		before := s.pos
		if !r.rule.match(s) {
			break
		}
		count++
		if s.pos == before {
			break
		}
	}
	if count < r.min {
		s.reset(pos, n)
		return false
	}
	return true
}

type notPredicate struct {
	rule Rule
}

// Not succeeds without consuming input when rule does not match here
func Not(rule Rule) Rule {
	return &notPredicate{rule: rule}
}

func (p *notPredicate) match(s *state) bool {
	pos, n := s.mark()
	furthest, expected := s.furthest, append([]string(nil), s.expected...)
	matched := p.rule.match(s)
	s.reset(pos, n)
	// lookahead must not pollute error reporting
	s.furthest, s.expected = furthest, expected
	return !matched
}

type endOfInput struct{}

// EOI matches only at the end of input
var EOI Rule = endOfInput{}

func (endOfInput) match(s *state) bool {
	if s.pos == len(s.input) {
		return true
	}
	s.fail("end of input")
	return false
}

type capture struct {
	name string
	rule Rule
}

// Capture records the span matched by rule as a Node named name
func Capture(name string, rule Rule) Rule {
	return &capture{name: name, rule: rule}
}

func (c *capture) match(s *state) bool {
	start := s.pos
	outer := s.children
	s.children = nil
	ok := c.rule.match(s)
	inner := s.children
	s.children = outer
	if !ok {
		return false
	}
	s.children = append(s.children, &Node{
		Rule:     c.name,
		Text:     s.input[start:s.pos],
		Start:    start,
		End:      s.pos,
		Children: inner,
	})
	return true
}

type labelled struct {
	name string
	rule Rule
}

// Label reports failures of rule that make no progress as "expected name"
// instead of listing the terminals rule starts with.
func Label(name string, rule Rule) Rule {
	return &labelled{name: name, rule: rule}
}

func (l *labelled) match(s *state) bool {
	start := s.pos
	before, beforeLen := s.furthest, len(s.expected)
	if l.rule.match(s) {
		return true
	}
	if s.furthest == start {
		if before == start {
			s.expected = s.expected[:beforeLen]
		} else {
			s.expected = s.expected[:0]
		}
		s.fail(l.name)
	}
	return false
}
