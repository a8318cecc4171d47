package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	info := Build()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, "v1", info.APIVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)

	s := info.String()
	assert.True(t, strings.HasPrefix(s, "dre "+Version+" (api v1"), s)
	assert.Contains(t, s, "commit unknown")
}
