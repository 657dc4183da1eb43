package mcp

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/apiclient"
)

// Server speaks MCP over stdio: newline-delimited JSON-RPC 2.0 on
// stdin/stdout. Logs must go to stderr since stdout carries the protocol.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *log.Logger
	version string
	api     *apiclient.Client
	tools   map[string]ToolHandler
}

// NewServer creates an MCP server whose tools proxy the analysis HTTP API.
func NewServer(version string, api *apiclient.Client, logger *log.Logger) *Server {
	s := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		api:     api,
		tools:   make(map[string]ToolHandler),
	}
	s.registerTools()
	return s
}

// Start begins processing messages until stdin closes.
func (s *Server) Start() error {
	s.logger.Printf("mcp server starting version=%s", s.version)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Printf("mcp server shutting down (EOF)")
				return nil
			}
			s.logger.Printf("error reading message: %v", err)
			continue
		}

		response := s.handleMessage(msg)

		// Notifications don't generate responses
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Printf("error writing response: %v", err)
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // reset so it is recreated with the new reader
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
