// Package githubapi talks to the GitHub REST API over HTTPS using a
// token-authenticated client, plus a raw content fetcher for single files.
package githubapi
