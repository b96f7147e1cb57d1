// Package stream pushes rendered frames to browsers over WebSocket.
package stream

import (
	"bytes"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gorilla/websocket"

	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/raster"
)

const writeWait = 2 * time.Second

// Hub tracks connected clients and broadcasts binary frames to them.
// Each connection has its own write lock so one slow client does not
// interleave writes with another broadcast to it.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("stream: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Logger().Info("stream: client connected", "remote", r.RemoteAddr, "clients", n)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(conn)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
		logging.Logger().Info("stream: client disconnected", "remote", conn.RemoteAddr().String())
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends data as one binary message to every client. Clients that
// fail to receive it are dropped.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	locks := make([]*sync.Mutex, 0, len(h.clients))
	for c, m := range h.clients {
		conns = append(conns, c)
		locks = append(locks, m)
	}
	h.mu.RUnlock()

	for i, c := range conns {
		locks[i].Lock()
		c.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.WriteMessage(websocket.BinaryMessage, data)
		locks[i].Unlock()
		if err != nil {
			h.remove(c)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := h.clients
	h.clients = make(map[*websocket.Conn]*sync.Mutex)
	h.mu.Unlock()
	for c := range conns {
		c.Close()
	}
}

// Presenter encodes frames as WebP and broadcasts them through a Hub.
// Encoding is skipped while no client is connected.
type Presenter struct {
	hub  *Hub
	rgba *image.RGBA
	fb   raster.FrameBuffer
	buf  bytes.Buffer
}

func NewPresenter(hub *Hub) *Presenter {
	return &Presenter{hub: hub}
}

func (p *Presenter) Present(pix []byte, stride, width, height int) error {
	if p.hub.Clients() == 0 {
		return nil
	}
	p.fb = raster.FrameBuffer{Width: width, Height: height, Stride: stride, Pix: pix}
	p.rgba = p.fb.ToRGBA(p.rgba)

	p.buf.Reset()
	if err := nativewebp.Encode(&p.buf, p.rgba, nil); err != nil {
		return err
	}
	p.hub.Broadcast(p.buf.Bytes())
	return nil
}
