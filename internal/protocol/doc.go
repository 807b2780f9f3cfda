// Package protocol owns the host-call wire contract.
//
// Ownership boundary:
// - request encoding (one UTF-8 JSON document, no framing)
//
// - response decoding and outcome classification
//
// - the call error taxonomy shared by client and embedders
package protocol
