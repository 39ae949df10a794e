// Package web serves a browser control panel for a running scene over HTTP and WebSocket.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bridge"
	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/gorilla/websocket"
)

//go:embed panel.html
var panelHTML []byte

// DefaultAddr is the listen address used when the mount element has no data-addr attribute.
const DefaultAddr = "127.0.0.1:8080"

// Message types exchanged with the panel.
const (
	MessageState       = "state"
	MessageResetCamera = "resetCamera"
	MessageError       = "error"
)

const writeWait = 5 * time.Second

// ErrAlreadyMounted is returned by Mount when the server is already serving a bridge.
var ErrAlreadyMounted = errors.New("web: already mounted")

// Message is the JSON envelope of every WebSocket frame in both directions.
type Message struct {
	Type  string        `json:"type"`
	State *bridge.State `json:"state,omitempty"`
	Error string        `json:"error,omitempty"`
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Server is a bridge.UI that serves the control panel at / and the state stream at /ws.
// Every client receives the state on connect, after every command, and on a fixed interval.
type Server struct {
	mu *sync.Mutex

	addr     string
	interval time.Duration
	upgrader websocket.Upgrader

	bridge   bridge.Bridge
	clients  map[*client]struct{}
	listener net.Listener
	http     *http.Server
	pool     worker.DynamicWorkerPool

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

var _ bridge.UI = &Server{}

// New creates an unmounted Server.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Server: the server
func New(options ...ServerOption) *Server {
	s := &Server{
		mu:       &sync.Mutex{},
		interval: 250 * time.Millisecond,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
		quit:    make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Mount starts listening on the address from the target's data-addr attribute,
// unless WithAddr overrode it, and begins streaming state from b.
func (s *Server) Mount(target document.Element, b bridge.Bridge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bridge != nil {
		return ErrAlreadyMounted
	}

	dataAddr, _ := target.Attr("data-addr")
	addr := common.Coalesce(s.addr, dataAddr, DefaultAddr)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listen on %s: %w", addr, err)
	}

	s.bridge = b
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler()}
	s.pool = worker.NewDynamicWorkerPool(4, 64, 1*time.Second)

	s.wg.Add(2)
	go s.serve(ln)
	go s.tick()

	log.Printf("[web] control panel for #%s at http://%s/", target.ID, ln.Addr())
	return nil
}

// Addr returns the address the server listens on, or "" before Mount.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the HTTP handler serving the panel and the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close stops the broadcaster, the HTTP server and every client connection.
// Safe to call multiple times.
func (s *Server) Close() error {
	var err error
	s.quitOnce.Do(func() {
		close(s.quit)

		s.mu.Lock()
		srv := s.http
		for c := range s.clients {
			c.conn.Close()
		}
		s.mu.Unlock()

		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			defer cancel()
			err = srv.Shutdown(ctx)
		}
		s.wg.Wait()
	})
	return err
}

func (s *Server) serve(ln net.Listener) {
	defer s.wg.Done()
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[web] serve: %v", err)
	}
}

// tick broadcasts the state on every interval until Close.
func (s *Server) tick() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.broadcast()
		}
	}
}

func (s *Server) stateMessage() Message {
	st := s.bridge.State()
	return Message{Type: MessageState, State: &st}
}

// broadcast sends the current state to every client, one worker task per client.
func (s *Server) broadcast() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	if len(clients) == 0 {
		return
	}

	msg := s.stateMessage()
	var wg sync.WaitGroup
	for i, c := range clients {
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if err := c.send(msg); err != nil {
					s.drop(c)
					return nil, err
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// closed reports whether Close has begun. Callers hold s.mu.
func (s *Server) closed() bool {
	select {
	case <-s.quit:
		return true
	default:
		return false
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	mounted := s.bridge != nil
	closed := s.closed()
	s.mu.Unlock()
	if !mounted {
		http.Error(w, "no scene mounted", http.StatusServiceUnavailable)
		return
	}
	if closed {
		http.Error(w, "server closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] websocket upgrade: %v", err)
		return
	}

	// Close sweeps clients under s.mu after closing quit, so a connection
	// registered here is either swept or rejected.
	c := &client{conn: conn}
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	defer s.drop(c)

	if err := c.send(s.stateMessage()); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleMessage(c, data)
	}
}

func (s *Server) handleMessage(c *client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.replyError(c, fmt.Sprintf("invalid message: %v", err))
		return
	}

	switch msg.Type {
	case MessageResetCamera:
		s.bridge.ResetCamera()
		s.broadcast()
	default:
		s.replyError(c, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// replyError sends an error message to c, dropping the client if the write fails.
func (s *Server) replyError(c *client, text string) {
	if err := c.send(Message{Type: MessageError, Error: text}); err != nil {
		log.Printf("[web] error reply: %v", err)
		s.drop(c)
	}
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(panelHTML)
}
