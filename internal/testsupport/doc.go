// Package testsupport provides shared helpers for package tests: temp-dir
// configurations and stand-in catalog and destination HTTP servers.
package testsupport
