package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/usecases"
	"github.com/samirrijal/saferoute/internal/pkg/locwatch"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

// wsMessage is sent from client to server.
type wsMessage struct {
	Type  string  `json:"type"` // "location" | "search"
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"` // zones per update, default 8
	Query string  `json:"query"`
}

// wsEvent is sent from server to client.
type wsEvent struct {
	Type   string              `json:"type"` // "zones" | "places" | "error"
	Center *domain.GeoPoint    `json:"center,omitempty"`
	Zones  []domain.SafetyZone `json:"zones,omitempty"`
	Query  string              `json:"query,omitempty"`
	Places []domain.Place      `json:"places,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// WebSocketHandler returns a handler that upgrades to WebSocket and streams
// map data for a moving client.
// Clients send {"type":"location","lat":40.71,"lon":-74.0} whenever their
// position changes and receive fresh safety zones around it. Address
// lookups, {"type":"search","query":"..."}, are debounced so only the
// last keystroke within usecases.GeocodeDebounce is resolved.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		logger := slog.Default().With("remote_addr", remoteAddr)
		logger.Info("ws client connected")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The Conn is recycled once this handler returns, so nothing may
		// write to it after closed is set.
		var mu sync.Mutex
		var closed bool
		// Helper: thread-safe write
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return nil
			}
			return c.WriteMessage(websocket.TextMessage, data)
		}

		// The connection owns its position; zones follow it.
		position := locwatch.New()
		var zoneCount int
		unsubscribe := position.Subscribe(func(p domain.GeoPoint) {
			zones, err := deps.Zones.Around(p, zoneCount)
			if err != nil {
				_ = writeJSON(wsEvent{Type: "error", Error: err.Error()})
				return
			}
			_ = writeJSON(wsEvent{Type: "zones", Center: &p, Zones: zones})
		})
		defer unsubscribe()

		// pending counts armed or running search callbacks.
		var pending sync.WaitGroup
		var searchMu sync.Mutex
		var searchTimer *time.Timer

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					if closed {
						mu.Unlock()
						return
					}
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()
		defer close(done)

		defer func() {
			cancel()
			searchMu.Lock()
			if searchTimer != nil && searchTimer.Stop() {
				pending.Done()
			}
			searchMu.Unlock()
			pending.Wait()

			mu.Lock()
			closed = true
			mu.Unlock()
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(wsEvent{Type: "error", Error: "invalid JSON"})
				continue
			}

			switch m.Type {
			case "location":
				p := domain.GeoPoint{Lat: m.Lat, Lon: m.Lon}
				if err := usecases.ValidatePoint(p); err != nil {
					_ = writeJSON(wsEvent{Type: "error", Error: err.Error()})
					continue
				}
				zoneCount = m.Count
				position.Set(p)

			case "search":
				query := m.Query
				searchMu.Lock()
				if searchTimer != nil && searchTimer.Stop() {
					pending.Done()
				}
				pending.Add(1)
				searchTimer = time.AfterFunc(usecases.GeocodeDebounce, func() {
					defer pending.Done()
					places, err := deps.Geocode.Search(ctx, query)
					if err != nil {
						logger.Warn("ws geocode failed", "error", err)
						_ = writeJSON(wsEvent{Type: "error", Query: query, Error: "geocoding service unavailable"})
						return
					}
					_ = writeJSON(wsEvent{Type: "places", Query: query, Places: places})
				})
				searchMu.Unlock()

			default:
				_ = writeJSON(wsEvent{Type: "error", Error: "unknown message type: " + m.Type})
			}
		}

		logger.Info("ws client disconnected")
	}
}
