package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeStack(t *testing.T) {
	s := NewScopeStack("size_t")
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.IsTypeName("size_t"))
	assert.False(t, s.IsTypeName("x"))

	s.DeclareTypedef("T")
	s.PushScope()
	assert.Equal(t, 2, s.Depth())
	assert.True(t, s.IsTypeName("T"))

	// An object in an inner scope hides the typedef.
	s.DeclareObject("T")
	assert.False(t, s.IsTypeName("T"))
	s.PushScope()
	assert.False(t, s.IsTypeName("T"))
	s.DeclareTypedef("T")
	assert.True(t, s.IsTypeName("T"))
	s.PopScope()
	assert.False(t, s.IsTypeName("T"))
	s.PopScope()

	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.IsTypeName("T"))
}

func TestScopeStackRedeclare(t *testing.T) {
	s := NewScopeStack()
	s.DeclareObject("a")
	s.DeclareTypedef("a")
	assert.True(t, s.IsTypeName("a"))
	s.DeclareObject("a")
	assert.False(t, s.IsTypeName("a"))
}

func TestPopFileScope(t *testing.T) {
	s := NewScopeStack()
	s.PushScope()
	s.PopScope()
	assert.Panics(t, func() { s.PopScope() })
}

func TestScopeStackString(t *testing.T) {
	s := NewScopeStack("T")
	s.PushScope()
	s.DeclareObject("x")
	assert.Equal(t, "map[T:true]\nmap[x:false]", s.String())
}
