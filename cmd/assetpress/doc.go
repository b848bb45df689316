// Package main hosts the assetpress CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into batch
// conversions, directory watches, environment checks, and run reporting. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
