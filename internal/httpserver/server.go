package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/dm/meshify/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// TypeSnapshot tags stream frames carrying a model.Snapshot.
const TypeSnapshot = "snapshot"

// StreamMessage is one frame pushed to stream clients.
type StreamMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server relays the snapshots held in a Store over HTTP.
type Server struct {
	addr      string
	store     *Store
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new relay server.
func NewServer(addr string, store *Store) *Server {
	if addr == "" {
		addr = "127.0.0.1:8686"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		store:     store,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/views", s.handleViews)
	api.GET("/views/:name", s.handleSnapshot)
	api.GET("/views/:name/history", s.handleHistory)
	api.GET("/views/:name/stream", s.handleStream)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.router(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Errorf("relay server on %s stopped: %v", s.addr, err)
		}
	}()
	logx.Infof("relay listening on %s", listener.Addr())
	return nil
}

// Addr returns the listening address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server and closes open streams.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
		"views":  len(s.store.Views()),
	})
}

func (s *Server) handleViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"views": s.store.Views()})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, err := s.store.Latest(c.Param("name"))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleHistory(c *gin.Context) {
	name := c.Param("name")
	points, err := s.store.History(name)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": name, "points": points})
}

func (s *Server) handleStream(c *gin.Context) {
	name := c.Param("name")
	snaps, unsubscribe, err := s.store.Subscribe(name)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logx.WithContext(c.Request.Context()).Errorf("stream %s: upgrade: %v", name, err)
		return
	}
	defer conn.Close()

	log := logx.WithContext(c.Request.Context()).WithFields(
		logx.Field("view", name),
		logx.Field("remote", c.ClientIP()),
	)
	log.Debugf("stream client connected")

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := writeFrame(conn, StreamMessage{Type: TypeSnapshot, Data: snap}); err != nil {
				log.Debugf("stream write: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			log.Debugf("stream client disconnected")
			return
		case <-s.ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "relay shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}

// readPump discards client frames and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, ErrNoSnapshot):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Publisher returns session callbacks that feed view results into store.
func Publisher(store *Store, view string) (func(model.Snapshot), func(error)) {
	onUpdate := func(snap model.Snapshot) {
		if !store.Publish(snap) {
			logx.Debugf("view %s: dropped snapshot seq %d", view, snap.Seq)
		}
	}
	onError := func(err error) {
		logx.Errorf("view %s: %v", view, err)
		store.RecordError(view, err)
	}
	return onUpdate, onError
}
