package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTable(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "elon musk"},
		{1, "maria sharapova"},
		{2, "messi"},
		{3, "ronaldo"},
		{4, "virat"},
		{5, Unknown},
		{17, Unknown},
		{-1, Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Default.Name(tt.index), "index %d", tt.index)
	}
}

func TestFromConfig(t *testing.T) {
	assert.Equal(t, Default, FromConfig(nil))

	names := []string{"cat", "dog"}
	table := FromConfig(names)
	names[0] = "mutated"

	assert.Equal(t, "cat", table.Name(0))
	assert.Equal(t, "dog", table.Name(1))
	assert.Equal(t, Unknown, table.Name(2))
}
