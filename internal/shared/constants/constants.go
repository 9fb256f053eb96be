package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds every network-facing probe unless the
	// definition overrides it. Filesystem probes carry no timeout.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultSocketTimeout bounds raw TCP reachability probes.
	DefaultSocketTimeout = 2 * time.Second
	// BodySnippetLimitBytes caps how much of a response body a probe reads
	// when looking for token-like content.
	BodySnippetLimitBytes = 4096
)
