package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "JJA Five", ToString("JJA Five"))
	assert.Equal(t, "F5162713", ToString([]byte("F5162713")))
	assert.Equal(t, "", ToString(nil))
	// JSON numbers decode as float64.
	assert.Equal(t, "42", ToString(float64(42)))
	assert.Equal(t, "true", ToString(true))
}
