package pointers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, "inv_1", Deref(Ptr("inv_1")))
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, 0, Deref[int](nil))
}
