package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolString(t *testing.T) {
	s := New("count")
	assert.False(t, s.IsError())
	assert.Equal(t, "Symbol(count)", s.String())

	e := NewError("count", "Could not find count.")
	assert.True(t, e.IsError())
	assert.Equal(t, "count", e.Name)
	assert.Equal(t, "Symbol(Could not find count.)", e.String())
}
