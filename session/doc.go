// Package session holds the session record, the store contract, and the two
// supplied stores: an in-memory reference store serializing everything behind
// one mutex, and a Redis-backed store for production deployments.
//
// All store operations are linearizable with respect to each other, and every
// read treats a session past its expiry as absent even when it is still
// physically present.
package session
