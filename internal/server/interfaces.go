package server

// Server is the lifecycle contract for the transport server managed by this
// package.
//
// RunServer blocks until shutdown is requested; Shutdown stops accepting new
// connections and drains the ones in flight.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
