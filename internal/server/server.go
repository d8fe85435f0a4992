// Package server is the HTTP observer/control surface of the run manager:
// starting runs, reading snapshots and day records, and feeding human
// decisions in.
package server

type Server struct {
	RunServer
}

func NewServer(
	runServer RunServer,
) Server {
	return Server{
		RunServer: runServer,
	}
}
