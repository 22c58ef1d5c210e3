package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldProcessBlocksDuplicates(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	assert.True(t, c.ShouldProcess("wamid.1"))
	assert.False(t, c.ShouldProcess("wamid.1"))
	assert.True(t, c.ShouldProcess("wamid.2"))
	assert.Equal(t, 2, c.Len())
}

func TestEvictExpiredFreesOldEntries(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	assert.True(t, c.ShouldProcess("wamid.1"))

	// still inside the window
	c.evictExpired(time.Now().Add(30 * time.Second))
	assert.False(t, c.ShouldProcess("wamid.1"))

	// past the window the entry is gone and the id can be processed again
	c.evictExpired(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.ShouldProcess("wamid.1"))
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Close()
	c.Close()
}
