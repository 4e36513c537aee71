// file: utils/object_name_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateObjectNameKeepsExtension(t *testing.T) {
	name := GenerateObjectName("Pista Final.ZIP")
	assert.True(t, strings.HasSuffix(name, ".zip"), name)
	assert.NotContains(t, name, " ")
}

func TestGenerateObjectNameWithoutExtension(t *testing.T) {
	name := GenerateObjectName("README")
	assert.NotContains(t, name, ".")
}

func TestGenerateObjectNameIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := GenerateObjectName("a.txt")
		assert.False(t, seen[name], name)
		seen[name] = true
	}
}
