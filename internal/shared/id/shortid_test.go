package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		v, err := New(PrefixTrainer)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(v, "trn_"))
		assert.Len(t, v, len("trn_")+DefaultLength)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("sub_abc", PrefixSubscription))
	assert.False(t, HasPrefix("sub_", PrefixSubscription))
	assert.False(t, HasPrefix("pay_abc", PrefixSubscription))
	assert.False(t, HasPrefix("subabc", PrefixSubscription))
}
