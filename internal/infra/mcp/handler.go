package mcp

import (
	"fmt"
)

// ServerCapabilities represents the capabilities exposed by the server
type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// ToolsCapability represents the tools capability
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerInfo identifies this server to the client
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult represents the result of the initialize request
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// handleMessage processes an incoming MCP message and returns a response,
// or nil for notifications.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}
	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification")
}

func (s *Server) handleRequest(msg *Message) *Message {
	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, &InitializeResult{
			ProtocolVersion: "2024-11-05",
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{},
			},
			ServerInfo: ServerInfo{
				Name:    "archon-codebase",
				Version: s.version,
			},
		})
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.toolDefinitions(),
		})
	case "tools/call":
		return s.handleCallTool(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method))
	}
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Printf("client initialized")
	default:
		s.logger.Printf("unknown notification: %s", msg.Method)
	}
}

// handleCallTool executes a tool. Tool handlers always produce a JSON string
// payload, including for API-level failures; only transport-level problems
// surface as JSON-RPC errors.
func (s *Server) handleCallTool(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object")
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: name is required")
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Tool not found: %s", toolName))
	}

	s.logger.Printf("calling tool %s", toolName)

	text, err := handler(toolParams)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error())
	}

	return NewResultMessage(msg.Id, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": text,
			},
		},
	})
}
