//go:build !release
// +build !release

package version

const Version = "v0.1.0-dev"

const VersionGitRef = "dev"
