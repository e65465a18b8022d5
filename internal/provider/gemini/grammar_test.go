package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalAttempts(t *testing.T) {
	// MaxRetries is the number of retries after the first call, so the
	// default of 3 means 4 attempts in total.
	assert.Equal(t, uint(4), totalAttempts(DefaultConfig("key").MaxRetries))
	assert.Equal(t, uint(1), totalAttempts(0))
	assert.Equal(t, uint(1), totalAttempts(-1))
}
