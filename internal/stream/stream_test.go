package stream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
)

func dial(t *testing.T, srv *httptest.Server, hub *Hub) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() > 0 }, 2*time.Second, 5*time.Millisecond)
	return conn
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv, hub)
	defer conn.Close()

	hub.Broadcast([]byte("frame-1"))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	assert.Equal(t, "frame-1", string(data))

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestPresenterSendsWebP(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()
	defer hub.Close()

	p := NewPresenter(hub)
	fb := raster.NewFrameBuffer(16, 16)
	// no clients: nothing encoded
	require.NoError(t, p.Present(fb.Pix, fb.Stride, fb.Width, fb.Height))

	conn := dial(t, srv, hub)
	defer conn.Close()

	require.NoError(t, p.Present(fb.Pix, fb.Stride, fb.Width, fb.Height))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestIndexPage(t *testing.T) {
	srv := httptest.NewServer(Handler(NewHub()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/ws")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderLoopStopsOnCancel(t *testing.T) {
	sc := scene.New([]scene.Sphere{{R: 0.1}})
	d := frame.New(sc, 32, 32, frame.Options{RotationSpeed: 1, Light: raster.DefaultLight(), Workers: 1})
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	p := frame.PresenterFunc(func([]byte, int, int, int) error {
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	})

	err := RenderLoop(ctx, d, p, 200)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, frames, 3)
	assert.Positive(t, d.Rotation())

	boom := errors.New("present failed")
	err = RenderLoop(context.Background(), d, frame.PresenterFunc(func([]byte, int, int, int) error { return boom }), 200)
	assert.ErrorIs(t, err, boom)
}
