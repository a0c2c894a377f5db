package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, NumberValue(3).Equal(NumberValue(3)))
	assert.False(t, NumberValue(3).Equal(NumberValue(4)))
	assert.True(t, TextValue("a").Equal(TextValue("a")))
	assert.True(t, BoolValue(true).Equal(BoolValue(true)))

	assert.False(t, NumberValue(0).Equal(TextValue("0")))
	assert.False(t, BoolValue(true).Equal(NumberValue(1)))
	assert.False(t, TextValue("TRUE").Equal(BoolValue(true)))
}
