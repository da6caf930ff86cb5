// Package services implements the driving port interfaces.
// Services contain the core logic of each operation and orchestrate
// calls to driven ports (adapters).
//
// Every operation returns a *domain.Result, also on failure, and records
// it through the history service when one is configured.
package services
