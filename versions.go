// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"github.com/maloquacious/semver"
)

// Version returns the version of the report definition language
// tooling. The build field carries the VCS commit, when known.
func Version() semver.Version {
	return semver.Version{Major: 0, Minor: 1, Patch: 0, Build: semver.Commit()}
}
