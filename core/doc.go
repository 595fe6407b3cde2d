// Package core contains the code widget's state machine and contracts.
//
// Allowed here:
// - the validation gate, the controller transition function and its effects
// - the cell intent surface (key press -> intent)
// - message contracts and the key registry shared by hosts
//
// Not allowed here:
// - lipgloss rendering (see widgets)
// - program wiring, persistence or configuration loading
package core
