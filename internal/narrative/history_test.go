package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryContext(t *testing.T) {
	assert.Equal(t, StartContext, HistoryContext(nil))
	assert.Equal(t,
		"Previous choices: 1. board the ship 2. trust the clock",
		HistoryContext([]string{"board the ship", " trust the clock "}),
	)
}
