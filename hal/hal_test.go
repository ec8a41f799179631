package hal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("error", LOG_ERROR.String())
	assert.Equal("info", LOG_INFO.String())
	assert.Equal("memory", LOG_MEMORY.String())
	assert.Equal("cpu", LOG_CPU.String())
	assert.Equal("all", LOG_ALL.String())
	assert.Equal("LogLevel(3)", (LOG_ERROR | LOG_INFO).String())

	var logs bytes.Buffer
	host := NewHeadless()
	host.Logger = log.New(&logs, "", 0)
	host.Log(LOG_INFO, "hello\n")
	assert.Equal("info: hello\n", logs.String())
}
