// Package crack runs dictionary attacks against HMAC-signed tokens: candidate
// secrets stream from a wordlist source, a dedicated worker tries each in
// order, and the run terminates as Found, Exhausted, or Cancelled with the
// attempt count it reached.
package crack
