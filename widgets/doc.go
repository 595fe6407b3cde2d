// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (cell boxes, the code row, status and footer bars)
// - the palette and the class-name style variants
//
// Not allowed here:
// - key handling, value transitions or focus policy
package widgets
