package buildinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := String()
	assert.True(t, strings.HasPrefix(s, "aif "), s)
	assert.Contains(t, s, "commit="+Commit)
}

func TestResolvedVersion_PrefersInjected(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", ResolvedVersion())
}
