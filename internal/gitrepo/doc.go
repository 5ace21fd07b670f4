// Package gitrepo contains helpers for creating and manipulating Git repositories.
//
// It exposes RepositoryManager for initializing repositories, configuring
// remotes, pushing initial commits, and fetching single files through shallow
// sparse checkouts, along with structured remote URL parsing utilities.
package gitrepo
