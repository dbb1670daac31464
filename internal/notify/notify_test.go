package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_PushDrain(t *testing.T) {
	b := NewBuffer()

	b.Push("s1", LevelSuccess, "Added to wishlist!")
	b.Push("s1", LevelInfo, "Removed from wishlist")
	b.Push("s2", LevelError, "Something went wrong")

	toasts := b.Drain("s1")
	require.Len(t, toasts, 2)
	assert.Equal(t, LevelSuccess, toasts[0].Level)
	assert.Equal(t, "Added to wishlist!", toasts[0].Message)
	assert.Equal(t, "Removed from wishlist", toasts[1].Message)

	assert.Empty(t, b.Drain("s1"), "drain clears the buffer")
	assert.Len(t, b.Drain("s2"), 1)
}

func TestBuffer_DropsOldestAtCapacity(t *testing.T) {
	b := NewBuffer()

	for i := 0; i < maxPerSession+5; i++ {
		b.Push("s1", LevelInfo, fmt.Sprintf("toast %d", i))
	}

	toasts := b.Drain("s1")
	require.Len(t, toasts, maxPerSession)
	assert.Equal(t, "toast 5", toasts[0].Message)
}
