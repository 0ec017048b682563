// Package session holds the in-memory record of the most recent polish:
// the source text, the alternatives the provider returned, and which
// alternative is currently on the clipboard.
package session

// Session tracks the alternatives from the latest polish request. The zero
// value is an empty session with no suggestions. All access happens from the
// agent's single event loop, so no locking is needed.
type Session struct {
	source       string
	alternatives []string
	index        int
}

// SetAlternatives replaces the suggestion list and resets the cursor to the
// first entry. An empty list clears the session.
func (s *Session) SetAlternatives(source string, alternatives []string) {
	s.source = source
	s.alternatives = alternatives
	s.index = 0
}

// Clear drops all suggestions
func (s *Session) Clear() {
	s.source = ""
	s.alternatives = nil
	s.index = 0
}

// HasSuggestions reports whether any alternatives are held
func (s *Session) HasSuggestions() bool {
	return len(s.alternatives) > 0
}

// Current returns the currently selected alternative, or false when the
// session is empty.
func (s *Session) Current() (string, bool) {
	if len(s.alternatives) == 0 {
		return "", false
	}
	return s.alternatives[s.index], true
}

// Next advances to the following alternative, wrapping around after the last
// one, and returns the newly selected text. Returns false when the session
// is empty.
func (s *Session) Next() (string, bool) {
	if len(s.alternatives) == 0 {
		return "", false
	}
	s.index = (s.index + 1) % len(s.alternatives)
	return s.alternatives[s.index], true
}

// Position returns the 1-based position of the selected alternative and the
// total count. Both are 0 when the session is empty.
func (s *Session) Position() (current, total int) {
	if len(s.alternatives) == 0 {
		return 0, 0
	}
	return s.index + 1, len(s.alternatives)
}

// Source returns the text the current alternatives were generated from
func (s *Session) Source() string {
	return s.source
}
