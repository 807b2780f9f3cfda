// Package guest owns the synchronous host-call client.
//
// Ownership boundary:
// - the one-call round trip: encode, acquire, write, read, classify
//
// - per-call logging and metrics
package guest
