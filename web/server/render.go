package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jmcgill/go-pathtracer/pkg/renderer"
	"github.com/jmcgill/go-pathtracer/pkg/scene"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The preview page may be served from another origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RenderRequest is the first message a client sends on the render socket
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene name (e.g. "cover")
	Width      int    `json:"width"`      // Image width (0 = scene default)
	MaxSamples int    `json:"maxSamples"` // Samples per pixel (0 = scene default)
	MaxDepth   int    `json:"maxDepth"`   // Ray bounce limit (0 = scene default)
	MaxPasses  int    `json:"maxPasses"`  // Number of preview passes
	Seed       int64  `json:"seed"`       // Base random seed
	Workers    int    `json:"workers"`    // Render workers (0 = CPU count)
}

// ProgressUpdate is sent to the client after every completed pass
type ProgressUpdate struct {
	Type            string  `json:"type"` // "update"
	PassNumber      int     `json:"passNumber"`
	TotalPasses     int     `json:"totalPasses"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	AverageSamples  float64 `json:"averageSamples"`
	ImageData       string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs       int64   `json:"elapsedMs"`
	IsComplete      bool    `json:"isComplete"`
}

// ErrorUpdate reports a failed render to the client
type ErrorUpdate struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// handleRender streams a progressive render over a websocket: the client
// sends one RenderRequest, then receives a ProgressUpdate per pass until
// the sample target is reached. Closing the socket cancels the render
// between tiles.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Printf("invalid render request: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()
	defer client.close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client sends nothing after the request; a read returning an
	// error means the socket closed and the render should stop.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	if err := s.renderToClient(ctx, req, client); err != nil && ctx.Err() == nil {
		client.send(ErrorUpdate{Type: "error", Message: err.Error()})
	}
}

// renderToClient runs the progressive passes and streams a frame per pass
func (s *Server) renderToClient(ctx context.Context, req RenderRequest, client *client) error {
	sc, err := sceneByName(req.Scene, req.Seed)
	if err != nil {
		return err
	}
	if req.Width > 0 {
		sc.CameraConfig.ImageWidth = req.Width
	}
	if req.MaxSamples > 0 {
		sc.CameraConfig.SamplesPerPixel = req.MaxSamples
	}
	if req.MaxDepth > 0 {
		sc.CameraConfig.MaxDepth = req.MaxDepth
	}

	camera := renderer.NewCamera(sc.CameraConfig)
	raytracer := renderer.NewRaytracer(sc, camera, renderer.RenderConfig{
		NumWorkers: req.Workers,
		TileSize:   64,
		Seed:       req.Seed,
	}, newClientLogger(client))

	targets := passTargets(camera.SamplesPerPixel(), req.MaxPasses)
	fb := renderer.NewFramebuffer(camera.ImageWidth(), camera.ImageHeight())
	start := time.Now()

	for pass, target := range targets {
		stats, err := raytracer.RenderInto(ctx, fb, target)
		if err != nil {
			return err
		}

		frame, err := encodeFrame(fb)
		if err != nil {
			return err
		}
		client.send(ProgressUpdate{
			Type:            "update",
			PassNumber:      pass + 1,
			TotalPasses:     len(targets),
			SamplesPerPixel: target,
			AverageSamples:  stats.AverageSamples,
			ImageData:       frame,
			ElapsedMs:       time.Since(start).Milliseconds(),
			IsComplete:      pass == len(targets)-1,
		})
	}
	return nil
}

// passTargets builds the cumulative per-pass sample targets: a 1-sample
// preview, then doubling up to the full count.
func passTargets(maxSamples, maxPasses int) []int {
	if maxPasses <= 1 || maxSamples <= 1 {
		return []int{maxSamples}
	}

	var targets []int
	for target := 1; target < maxSamples && len(targets) < maxPasses-1; target *= 2 {
		targets = append(targets, target)
	}
	return append(targets, maxSamples)
}

// encodeFrame converts the framebuffer to a base64 PNG for the client
func encodeFrame(fb *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.ToImage()); err != nil {
		return "", fmt.Errorf("encoding preview frame: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sceneByName maps a requested scene name to its builder
func sceneByName(name string, seed int64) (*scene.Scene, error) {
	switch name {
	case "cover", "":
		return scene.NewCoverScene(seed), nil
	case "test":
		return scene.NewTestScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

// sceneNames lists the scenes sceneByName accepts
func sceneNames() []string {
	return []string{"cover", "test"}
}
