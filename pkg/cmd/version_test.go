package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_writeBuildInfo(t *testing.T) {
	info := buildInfo{Version: "v1.2.3", GitRef: "abc123", GoVersion: "go1.23.8", Platform: "linux/amd64"}

	var buf bytes.Buffer
	writeBuildInfo(&buf, info, false)
	assert.Equal(t, "bbands v1.2.3 (abc123) built with go1.23.8 for linux/amd64\n", buf.String())

	buf.Reset()
	writeBuildInfo(&buf, info, true)
	assert.Equal(t, "v1.2.3\n", buf.String())
}

func Test_currentBuildInfo(t *testing.T) {
	info := currentBuildInfo()
	assert.NotEmpty(t, info.Version)
	assert.Contains(t, info.Platform, "/")
}
