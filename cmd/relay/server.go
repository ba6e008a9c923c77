package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"ledengine/pkg/wire"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// connRegistry tracks live websocket connections per device, so a broadcast
// or a per-device send reaches every open connection that device holds.
type connRegistry struct {
	mu sync.Mutex
	by map[string]map[*websocket.Conn]struct{}
}

func newConnRegistry() *connRegistry {
	return &connRegistry{by: map[string]map[*websocket.Conn]struct{}{}}
}

func (cr *connRegistry) add(id string, c *websocket.Conn) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if cr.by[id] == nil {
		cr.by[id] = map[*websocket.Conn]struct{}{}
	}
	cr.by[id][c] = struct{}{}
}

func (cr *connRegistry) remove(id string, c *websocket.Conn) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if set := cr.by[id]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(cr.by, id)
		}
	}
	_ = c.Close()
}

func (cr *connRegistry) send(id string, payload []byte) int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	sent := 0
	if set := cr.by[id]; set != nil {
		for c := range set {
			_ = c.WriteMessage(websocket.TextMessage, payload)
			sent++
		}
	}
	return sent
}

func (cr *connRegistry) broadcast(payload []byte) int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	sent := 0
	for _, set := range cr.by {
		for c := range set {
			_ = c.WriteMessage(websocket.TextMessage, payload)
			sent++
		}
	}
	return sent
}

// relay bundles the registry and persistence root the handlers close over.
type relay struct {
	dataDir string
	conns   *connRegistry
}

func newRouter(rl *relay) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	r.Post("/register", rl.handleRegister)

	r.Route("/devices/{id}", func(r chi.Router) {
		r.Get("/prefs", rl.handleGetPrefs)
		r.Put("/prefs", rl.handlePutPrefs)
	})

	r.Get("/ws", rl.handleWS)
	r.Post("/test/broadcast", rl.handleTestBroadcast)

	return r
}

type registerReq struct {
	Label    string `json:"label"`
	DeviceID string `json:"deviceId,omitempty"`
}
type registerResp struct {
	DeviceID     string `json:"deviceId"`
	DeviceSecret string `json:"deviceSecret"`
}

func (rl *relay) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", 400)
		return
	}

	id := strings.TrimSpace(req.DeviceID)
	if id == "" {
		id = "strip-" + randHex(6)
	}

	d, ok := registerDevice(id, req.Label)
	if !ok {
		http.Error(w, "device exists", http.StatusConflict)
		return
	}
	if err := saveDevices(devFile(rl.dataDir)); err != nil {
		http.Error(w, "save devices: "+err.Error(), 500)
		return
	}

	writeJSON(w, registerResp{DeviceID: d.ID, DeviceSecret: d.Secret})
}

func (rl *relay) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !deviceExists(id) {
		http.Error(w, "unknown device", 404)
		return
	}
	p, err := readPrefs(rl.dataDir, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, p)
}

func (rl *relay) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !deviceExists(id) {
		http.Error(w, "unknown device", 404)
		return
	}
	var p Prefs
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad json", 400)
		return
	}
	if err := writePrefs(rl.dataDir, id, p); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (rl *relay) handleWS(w http.ResponseWriter, r *http.Request) {
	devID, ts, sig := r.Header.Get("X-Device-ID"), r.Header.Get("X-Auth-Ts"), r.Header.Get("X-Auth-Sig")
	if devID == "" || ts == "" || sig == "" {
		http.Error(w, "missing auth headers", http.StatusUnauthorized)
		return
	}
	if !deviceExists(devID) {
		http.Error(w, "unknown device", http.StatusUnauthorized)
		return
	}
	sec := deviceSecret(devID)
	if sec == "" {
		http.Error(w, "no secret", http.StatusUnauthorized)
		return
	}

	tUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || abs(time.Now().Unix()-tUnix) > 300 {
		http.Error(w, "timestamp skew", http.StatusUnauthorized)
		return
	}

	want := makeSig(devID, sec, ts)
	if !hmac.Equal([]byte(strings.ToLower(sig)), []byte(want)) {
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	rl.conns.add(devID, conn)
	defer rl.conns.remove(devID, conn)

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(60 * time.Second)) })

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func makeSig(id, secret, ts string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(id))
	m.Write([]byte(":"))
	m.Write([]byte(ts))
	return hex.EncodeToString(m.Sum(nil))
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func (rl *relay) handleTestBroadcast(w http.ResponseWriter, r *http.Request) {
	var body struct {
		wire.Message
		DeviceID string `json:"deviceId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json", 400)
		return
	}

	payload, _ := json.Marshal(body.Message)

	sent := 0
	if body.DeviceID != "" {
		sent = rl.conns.send(body.DeviceID, payload)
	} else {
		sent = rl.conns.broadcast(payload)
	}
	writeJSON(w, map[string]any{"status": "sent", "count": sent})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
