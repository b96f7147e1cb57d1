package stream

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/logging"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>sphere-viewer</title></head>
<body style="margin:0;background:#7f7f7f">
<img id="frame" style="display:block;margin:auto">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
let url = null;
ws.onmessage = (ev) => {
  if (url) URL.revokeObjectURL(url);
  url = URL.createObjectURL(ev.data);
  img.src = url;
};
</script>
</body>
</html>
`

// Handler serves the viewer page at / and the frame socket at /ws.
func Handler(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})
	return mux
}

// Serve runs the HTTP server and a render loop ticking d at fps until ctx is
// cancelled or either side fails.
func Serve(ctx context.Context, addr string, hub *Hub, d *frame.Driver, fps int) error {
	srv := &http.Server{Addr: addr, Handler: Handler(hub)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Logger().Info("stream: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return RenderLoop(ctx, d, NewPresenter(hub), fps)
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RenderLoop steps d once per tick with the measured wall-clock delta and
// presents each frame to p. It returns ctx.Err() when ctx is done.
func RenderLoop(ctx context.Context, d *frame.Driver, p frame.Presenter, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if _, err := d.Step(float32(dt.Seconds()), p); err != nil {
				return err
			}
		}
	}
}
