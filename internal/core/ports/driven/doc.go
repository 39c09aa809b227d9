// Package driven defines the outbound ports of the hexagon: interfaces
// the core services depend on and adapters implement (provider HTTP
// clients, credential persistence, configuration).
package driven
