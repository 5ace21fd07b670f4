// Package reporef normalizes textual GitHub repository references.
//
// It converts between bare owner/name pairs, HTTPS URLs, ssh:// URLs, and
// scp-style git@host:owner/repo strings, and exposes Resolve for extracting
// the canonical owner, name, and host from any accepted form. Every function
// is a pure string transformation with no I/O, safe for concurrent use.
package reporef
