package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("en-US")

	assert.Equal("pc 0x0100", From("pc 0x%04X", 0x100))
	assert.Equal("op HALT", From("op %v", "HALT"))
}

func TestSetLanguageFallback(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("not a language")
	assert.Equal("value 7", From("value %d", 7))

	SetLanguage("en-US")
}
