package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	first := map[string]int{"A": 1, "B": 2}
	second := map[string]int{"C": 3}

	all := maps.Collect(Concat2(maps.All(first), maps.All(second)))
	assert.Equal(map[string]int{"A": 1, "B": 2, "C": 3}, all)

	// Early stop.
	count := 0
	for range Concat2(maps.All(first), maps.All(second)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	assert.Empty(maps.Collect(Concat2[string, int]()))
}
