// Package storage defines the artifact store contract used by the
// report exporter. The local subpackage provides the filesystem
// implementation.
package storage
