// Package repoaccess exposes repository operations behind a configurable
// transport. The same create, clone, fetch, resolve, and push capabilities are
// served by the GitHub CLI, raw git over SSH, or the HTTPS REST API depending
// on the configured transport value.
package repoaccess
