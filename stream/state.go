package stream

import "strings"

// State is the open-block stack of one Reader or Writer session.
// It knows nothing about tokens or transports; use it directly if you
// already have Elements.
type State struct {
	stack []string
}

// NewState creates an empty State.
func NewState() *State {
	return &State{}
}

// Push opens a block.
func (s *State) Push(name string) {
	s.stack = append(s.stack, name)
}

// Pop closes the innermost block. When name is non-empty it must equal the
// innermost open block.
func (s *State) Pop(name string) (string, error) {
	n := len(s.stack)
	if n == 0 {
		return "", &Error{Kind: ErrUnbalanced, Name: name, Msg: "no open block"}
	}
	top := s.stack[n-1]
	if name != "" && name != top {
		return "", &Error{Kind: ErrUnbalanced, Name: name, Path: s.Path(), Msg: "expected end of " + top}
	}
	s.stack = s.stack[:n-1]
	return top, nil
}

// Top returns the innermost open block, if any.
func (s *State) Top() (string, bool) {
	n := len(s.stack)
	if n == 0 {
		return "", false
	}
	return s.stack[n-1], true
}

// Depth returns the number of open blocks (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Path returns the open blocks joined by "/", e.g. "Person/cities".
func (s *State) Path() string {
	return strings.Join(s.stack, "/")
}

// ProcessElement updates the stack for e the way a consuming read does:
// starts push, ends pop and must match, leaves leave it unchanged.
func (s *State) ProcessElement(e Element) error {
	switch e.kind {
	case KindStart:
		s.Push(e.name)
	case KindEnd:
		if _, err := s.Pop(e.name); err != nil {
			return err
		}
	}
	return nil
}

// Reset empties the stack.
func (s *State) Reset() {
	s.stack = s.stack[:0]
}
