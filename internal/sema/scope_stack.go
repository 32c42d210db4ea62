package sema

import (
	"strcheck/internal/source"
	"strcheck/internal/types"
)

type local struct {
	typ  types.TypeID
	span source.Span
}

type scope struct {
	names map[string]local
	// boundary scopes start a member body or lambda; duplicate checks stop there.
	boundary bool
}

type scopeStack struct {
	scopes []scope
}

func (s *scopeStack) push(boundary bool) {
	s.scopes = append(s.scopes, scope{boundary: boundary})
}

func (s *scopeStack) pop() {
	if len(s.scopes) > 0 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *scopeStack) reset() {
	s.scopes = s.scopes[:0]
}

// declare adds name to the innermost scope. When name is already declared in
// a scope up to the nearest boundary the previous declaration is returned.
func (s *scopeStack) declare(name string, t types.TypeID, sp source.Span) (local, bool) {
	if len(s.scopes) == 0 || name == "" || name == "_" {
		return local{}, false
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if prev, ok := s.scopes[i].names[name]; ok {
			return prev, true
		}
		if s.scopes[i].boundary {
			break
		}
	}
	top := &s.scopes[len(s.scopes)-1]
	if top.names == nil {
		top.names = make(map[string]local, 4)
	}
	top.names[name] = local{typ: t, span: sp}
	return local{}, false
}

func (s *scopeStack) lookup(name string) (local, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if l, ok := s.scopes[i].names[name]; ok {
			return l, true
		}
	}
	return local{}, false
}
