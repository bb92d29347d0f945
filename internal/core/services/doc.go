// Package services implements the driving port interfaces.
// Services contain the pipeline orchestration and call out
// to driven ports (adapters) for every side effect.
package services
