// Package alg enumerates the signing algorithms the engine understands and signs
// or verifies compact tokens over their exact transmitted bytes.
package alg
