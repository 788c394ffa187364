// Package services implements the driving port interfaces.
// Services contain the core logic of the search pipeline (routing,
// normalisation, pagination, history, neighbour navigation) and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go; the network, storage, and terminal live behind
// the driven ports.
package services
