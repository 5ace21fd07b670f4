// Package gitclone clones repositories in-process through go-git, without
// shelling out to a git binary.
package gitclone
