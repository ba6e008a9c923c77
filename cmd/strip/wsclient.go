package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"ledengine/pkg/intent"
	"ledengine/pkg/wire"
)

// sign HMAC-signs deviceID:ts the same way the teacher's Client.go does,
// so the relay can verify it with the matching secret.
func sign(deviceID, secret, ts string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(deviceID))
	m.Write([]byte(":"))
	m.Write([]byte(ts))
	return hex.EncodeToString(m.Sum(nil))
}

// runRelayClient dials the relay's websocket, authenticates with id, and
// forwards every decoded wire.Message onto sender until the process is
// told to stop. A dropped connection triggers an unconditional retry
// loop, matching connectToWebSocket's own forever-reconnect shape.
func runRelayClient(url string, id ident, sender intent.Sender) {
	for {
		ts := fmt.Sprintf("%d", time.Now().Unix())
		hdr := http.Header{
			"X-Device-ID": []string{id.DeviceID},
			"X-Auth-Ts":   []string{ts},
			"X-Auth-Sig":  []string{sign(id.DeviceID, id.DeviceSecret, ts)},
		}

		d := *websocket.DefaultDialer
		c, resp, err := d.Dial(url, hdr)
		if err != nil {
			if resp != nil {
				body, _ := io.ReadAll(resp.Body)
				_ = resp.Body.Close()
				log.Printf("relay connect failed (%s): HTTP %d %s body=%q", url, resp.StatusCode, resp.Status, string(body))
			} else {
				log.Printf("relay connect failed: %v", err)
			}
			time.Sleep(5 * time.Second)
			continue
		}

		log.Println("connected to relay as", id.DeviceID)
		handleRelayMessages(c, sender)
		// handleRelayMessages returns on disconnect; loop retries.
	}
}

func handleRelayMessages(c *websocket.Conn, sender intent.Sender) {
	defer c.Close()

	c.SetReadLimit(1 << 20)
	_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error { return c.SetReadDeadline(time.Now().Add(60 * time.Second)) })
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		t := time.NewTicker(30 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				_ = c.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
			case <-stop:
				return
			}
		}
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			log.Println("relay connection lost, reconnecting...")
			return
		}

		var msg wire.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			text := strings.TrimSpace(string(raw))
			log.Printf("ignoring unparseable relay message: %q (%v)", text, err)
			continue
		}

		if err := sender.TrySend(msg.ToIntent()); err != nil {
			log.Printf("dropping intent, channel full: %v", err)
		}
	}
}
