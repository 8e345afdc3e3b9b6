// Package timeouts holds the durations shared by the registrar server and
// its clients.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the registry service.
const GRPCDial = 10 * time.Second

// GRPCRequest caps a single registry call made by the seed client.
const GRPCRequest = 5 * time.Second

// HealthPoll is the interval between health probes while waiting for a peer.
const HealthPoll = 200 * time.Millisecond

// Shutdown limits how long the gRPC server drains in-flight calls.
const Shutdown = 5 * time.Second
