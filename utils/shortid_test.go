package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerateIDIsShortAndURLSafe(t *testing.T) {
	id := GenerateID()
	assert.Len(t, id, 12)
	assert.Regexp(t, urlSafe, id)
}

func TestGenerateIDDoesNotRepeat(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		id := GenerateID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d draws: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}
