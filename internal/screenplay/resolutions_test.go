package screenplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTheText(t *testing.T) {
	assert.True(t, ContainsTheText("").Resolve(""))
	assert.True(t, ContainsTheText("").Resolve("anything"))
	assert.True(t, ContainsTheText("upload").Resolve("http://localhost:4200/upload"))
	assert.True(t, ContainsTheText("invalid").Resolve("Invalid credentials"))
	assert.False(t, ContainsTheText("home").Resolve("http://localhost:4200/upload"))

	assert.False(t, ContainsTheExactText("invalid").Resolve("Invalid credentials"))
	assert.True(t, ContainsTheExactText("Invalid").Resolve("Invalid credentials"))
}

func TestIsEqualTo(t *testing.T) {
	assert.True(t, IsEqualTo("Saved").Resolve("Saved"))
	assert.False(t, IsEqualTo("Saved").Resolve("Saved "))
	assert.False(t, IsEqualTo("Saved").Resolve("saved"))
	assert.True(t, IsEqualTo(3).Resolve(3))
	assert.Equal(t, `to equal "Saved"`, IsEqualTo("Saved").Description())
	assert.Equal(t, "Saved", IsEqualTo("Saved").Expected())
}

func TestBooleanAndOrderedResolutions(t *testing.T) {
	assert.True(t, IsTrue().Resolve(true))
	assert.False(t, IsTrue().Resolve(false))
	assert.True(t, IsFalse().Resolve(false))
	assert.True(t, IsGreaterThan(0).Resolve(1))
	assert.False(t, IsGreaterThan(1).Resolve(1))
	assert.True(t, IsEmpty[string]().Resolve(nil))
	assert.False(t, IsEmpty[string]().Resolve([]string{"x"}))
}

func TestNot(t *testing.T) {
	r := Not(ContainsTheText("Test Track Title"))
	assert.True(t, r.Resolve("Subida fallida"))
	assert.False(t, r.Resolve("Test Track Title subida"))
	assert.Equal(t, `not to contain the text "Test Track Title"`, r.Description())
}
