// Package attack derives tampered variants of a parsed token: alg none
// rewrites, cross-family algorithm confusion, and stripped signatures.
// Generators are pure and never mutate their input token.
package attack
