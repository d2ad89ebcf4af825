package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/tilewm/internal/runtimepath"
)

const defaultClientTimeout = 5 * time.Second

// Client talks to a running daemon over its unix socket. Each call opens a
// fresh connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the daemon serving the current display.
// Path errors surface on the first call.
func NewClient() *Client {
	socketPath, _ := runtimepath.SocketPath()
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the daemon listening on socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: defaultClientTimeout}
}

func (c *Client) roundTrip(req *Request) (*Response, error) {
	if c.socketPath == "" {
		return nil, fmt.Errorf("no daemon socket path")
	}
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Command, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Command, err)
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", req.Command, err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// call sends command with an optional payload and decodes the reply data.
func call[T any](c *Client, command CommandType, payload any) (*T, error) {
	req := &Request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = raw
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	var out T
	if len(resp.Data) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return &out, nil
}

// GetStatus retrieves the daemon status.
func (c *Client) GetStatus() (*StatusData, error) {
	return call[StatusData](c, CommandGetStatus, nil)
}

// GetHistory retrieves the newest limit recorded events; zero means all.
func (c *Client) GetHistory(limit int) (*HistoryData, error) {
	return call[HistoryData](c, CommandGetHistory, HistoryPayload{Limit: limit})
}

// GetWindows retrieves the managed windows.
func (c *Client) GetWindows() (*WindowsData, error) {
	return call[WindowsData](c, CommandGetWindows, nil)
}

// ResetMode forces the daemon back to normal mode.
func (c *Client) ResetMode() error {
	_, err := c.roundTrip(&Request{Command: CommandResetMode})
	return err
}

// Ping checks that the daemon answers.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
