// Package services defines the error taxonomy shared across the conversion
// pipeline: sentinel markers for classification plus a helper that builds
// stage-context error messages.
package services
