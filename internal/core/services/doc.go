// Package services implements the driving port interfaces.
// Services orchestrate the title pipeline packages and the driven
// ports (adapters); they hold no I/O of their own.
package services
