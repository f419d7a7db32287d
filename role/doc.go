// Package role defines the pluggable role system: a [Provider] maps sessions
// to roles and compares role privilege, and [Hierarchy] is the supplied
// reference provider implementing a simple total order.
package role
