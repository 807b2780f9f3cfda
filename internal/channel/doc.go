// Package channel owns guest access to the host-call transport.
//
// Ownership boundary:
// - the Conn/Opener contract for one request/response exchange
//
// - the character-device opener and its size limits
package channel
