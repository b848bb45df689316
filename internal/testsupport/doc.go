// Package testsupport provides shared helpers for tests, including temp-dir
// backed configurations and tiny image fixtures.
package testsupport
