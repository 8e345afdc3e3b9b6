// Package discovery centralizes service address conventions.
package discovery

import (
	"strconv"
	"strings"
)

// ServiceRegistrar is the registry gRPC service identity.
const ServiceRegistrar = "registrar"

// DefaultHost is where local tooling expects services to run.
const DefaultHost = "localhost"

var grpcPorts = map[string]int{
	ServiceRegistrar: 8095,
}

// DefaultGRPCPort returns the conventional gRPC port for a service, or 0.
func DefaultGRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// DefaultGRPCAddr returns the conventional local gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	port := DefaultGRPCPort(service)
	if port <= 0 {
		return ""
	}
	return DefaultHost + ":" + strconv.Itoa(port)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}
