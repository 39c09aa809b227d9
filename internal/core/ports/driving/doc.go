// Package driving defines the inbound ports of the hexagon: the
// service interfaces the CLI (and any other entry point) calls into.
package driving
