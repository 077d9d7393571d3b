// Package data is the variable store widgets read conditions, text
// substitutions and settings from.
package data

import (
	"strconv"
	"strings"
	"sync"

	"recoveryui/gui/theme"
)

// Store holds string variables. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	vars map[string]string
}

func NewStore() *Store {
	return &Store{vars: make(map[string]string)}
}

// GetValue returns the variable or "" when unset.
func (s *Store) GetValue(name string) string {
	v, _ := s.Lookup(name)
	return v
}

func (s *Store) Lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// GetInt parses the variable as an integer, yielding def when unset or
// malformed.
func (s *Store) GetInt(name string, def int) int {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func (s *Store) SetValue(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
}

// LoadVariables reads <variable name="" value=""/> children of n. Later
// definitions win. It returns the number of variables set.
func (s *Store) LoadVariables(n theme.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	for _, c := range n.Children() {
		if c.Name() != "variable" {
			continue
		}
		name, ok := c.Attr("name")
		if !ok {
			continue
		}
		s.SetValue(name, theme.Attr(c, "value", ""))
		count++
	}
	return count
}

// Expand replaces each %name% in text with the variable's value. Unknown
// names are left as written.
func (s *Store) Expand(text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	var b strings.Builder
	for {
		start := strings.IndexByte(text, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := text[start+1 : end]
		if v, ok := s.Lookup(name); ok && name != "" {
			b.WriteString(text[:start])
			b.WriteString(v)
			text = text[end+1:]
			continue
		}
		b.WriteString(text[:end])
		text = text[end:]
	}
	b.WriteString(text)
	return b.String()
}
