package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/runtimepath"
)

// Inspector is the daemon state the server exposes.
type Inspector interface {
	Status() StatusData
	History(limit int) []HistoryEntry
	Windows() []WindowInfo
	ResetMode()
}

type commandHandler func(s *Server, payload json.RawMessage) *Response

var commandHandlers = map[CommandType]commandHandler{
	CommandGetStatus:  (*Server).handleGetStatus,
	CommandGetHistory: (*Server).handleGetHistory,
	CommandGetWindows: (*Server).handleGetWindows,
	CommandResetMode:  (*Server).handleResetMode,
}

// Server answers inspection requests on a unix socket, one JSON line per
// request and response.
type Server struct {
	socketPath string
	listener   net.Listener
	inspector  Inspector
	logger     *logging.Logger
	startTime  time.Time
	stopping   atomic.Bool
	conns      sync.WaitGroup
}

// NewServer creates a server on the runtime socket path of the current display.
func NewServer(inspector Inspector, logger *logging.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, inspector, logger), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, inspector Inspector, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		socketPath: socketPath,
		inspector:  inspector,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start binds the socket, replacing a stale one, and serves in the background.
func (s *Server) Start() error {
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}
	s.listener = listener

	s.logger.Info("IPC server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping.Load() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err.Error())
			continue
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.serveConn(conn)
		}()
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(defaultClientTimeout))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err.Error())
		return
	}

	var resp *Response
	if req, err := ParseRequest(line); err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		s.logger.Debug("IPC request", "command", string(req.Command))
		resp = s.handleCommand(req)
	}

	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", err)
		return
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err.Error())
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	h, ok := commandHandlers[req.Command]
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
	return h(s, req.Payload)
}

func okResponse(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus(json.RawMessage) *Response {
	status := s.inspector.Status()
	status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
	status.DaemonRunning = true
	return okResponse(status)
}

func (s *Server) handleGetHistory(payload json.RawMessage) *Response {
	var req HistoryPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid history payload: %v", err))
		}
	}
	if req.Limit < 0 {
		return NewErrorResponse("limit must not be negative")
	}

	events := s.inspector.History(req.Limit)
	if events == nil {
		events = []HistoryEntry{}
	}
	return okResponse(HistoryData{Events: events})
}

func (s *Server) handleGetWindows(json.RawMessage) *Response {
	windows := s.inspector.Windows()
	if windows == nil {
		windows = []WindowInfo{}
	}
	return okResponse(WindowsData{Windows: windows})
}

func (s *Server) handleResetMode(json.RawMessage) *Response {
	s.logger.Info("IPC: mode reset requested")
	s.inspector.ResetMode()
	return okResponse(nil)
}

// Stop closes the listener, waits for in-flight requests and removes the socket.
func (s *Server) Stop() {
	if !s.stopping.CompareAndSwap(false, true) {
		return
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.socketPath)
}
