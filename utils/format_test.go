package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKRW(t *testing.T) {
	assert.Equal(t, "0원", FormatKRW(0))
	assert.Equal(t, "950원", FormatKRW(950))
	assert.Equal(t, "49,000원", FormatKRW(49000))
	assert.Equal(t, "1,250,000원", FormatKRW(1250000))
	assert.Equal(t, "-5,000원", FormatKRW(-5000))
}
