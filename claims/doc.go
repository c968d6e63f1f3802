// Package claims rewrites time claims on decoded tokens without touching any
// other field. Every helper is pure and works on a clone of its input.
package claims
