package parse

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// TypeNameOracle classifies identifiers as typedef names or ordinary
// identifiers. The parser drives its scope maintenance: a scope is pushed on
// block entry and popped on exit, and every completed declaration reports the
// names it introduced.
type TypeNameOracle interface {
	IsTypeName(name string) bool
	PushScope()
	PopScope()
	// DeclareTypedef makes name a type name in the innermost scope.
	DeclareTypedef(name string)
	// DeclareObject makes name an ordinary identifier in the innermost
	// scope, hiding any typedef of the same name from outer scopes.
	DeclareObject(name string)
}

type scope struct {
	// true for a typedef name, false for an ordinary identifier.
	kv map[string]bool
}

func newScope() *scope {
	return &scope{kv: make(map[string]bool)}
}

// ScopeStack is the standard TypeNameOracle. The file scope is always
// present and cannot be popped.
type ScopeStack struct {
	scopes *arraystack.Stack
}

var _ TypeNameOracle = (*ScopeStack)(nil)

// NewScopeStack returns a stack holding only the file scope, with the given
// names predeclared as typedefs.
func NewScopeStack(typedefs ...string) *ScopeStack {
	s := &ScopeStack{scopes: arraystack.New()}
	s.scopes.Push(newScope())
	for _, name := range typedefs {
		s.DeclareTypedef(name)
	}
	return s
}

func (s *ScopeStack) IsTypeName(name string) bool {
	// Values is innermost first.
	for _, v := range s.scopes.Values() {
		if isType, ok := v.(*scope).kv[name]; ok {
			return isType
		}
	}
	return false
}

func (s *ScopeStack) PushScope() {
	s.scopes.Push(newScope())
}

func (s *ScopeStack) PopScope() {
	if s.scopes.Size() == 1 {
		panic("internal error - popped the file scope")
	}
	s.scopes.Pop()
}

func (s *ScopeStack) DeclareTypedef(name string) {
	s.top().kv[name] = true
}

func (s *ScopeStack) DeclareObject(name string) {
	s.top().kv[name] = false
}

// Depth is the number of open scopes, 1 at file scope.
func (s *ScopeStack) Depth() int {
	return s.scopes.Size()
}

func (s *ScopeStack) top() *scope {
	v, _ := s.scopes.Peek()
	return v.(*scope)
}

func (s *ScopeStack) String() string {
	str := ""
	vals := s.scopes.Values()
	for i := len(vals) - 1; i >= 0; i-- {
		if str != "" {
			str += "\n"
		}
		str += fmt.Sprintf("%v", vals[i].(*scope).kv)
	}
	return str
}
