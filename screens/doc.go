// Package screens contains concrete flows hosted by the program model.
//
// Allowed here:
// - screen implementations that satisfy core.Screen (code entry)
// - translation of terminal messages into cell intents and of effects into commands
//
// Not allowed here:
// - value transitions or validation (see core)
// - low-level widget/layout primitives
package screens
