// Package services implements the driving port interfaces.
// Services contain the core business logic - the sync engine, the
// document renderer and highlight ordering - and orchestrate calls
// to driven ports (adapters).
//
// Services are pure Go with no external dependencies.
package services
