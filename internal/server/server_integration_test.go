package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

func TestAPI_BindingWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a binding
	createBody := `{"command": "next", "plugin_name": "presentation", "action_name": "next-slide"}`
	resp, err := client.Post(ts.URL+"/api/bindings", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/bindings error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID      string `json:"id"`
		Command string `json:"command"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Command != "next" {
		t.Errorf("created command = %s, want next", created.Command)
	}

	// 2. List bindings
	resp, _ = client.Get(ts.URL + "/api/bindings")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/bindings status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Bindings []struct {
			ID      string `json:"id"`
			Command string `json:"command"`
		} `json:"bindings"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(listed.Bindings))
	}

	// 3. Update the binding
	updateBody := `{"enabled": false}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/bindings/"+created.ID, bytes.NewBufferString(updateBody))
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete the binding
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/bindings/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/bindings/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestWS_CommandBroadcast(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	// Registration happens on the server goroutine after the handshake
	deadline := time.Now().Add(time.Second)
	for srv.Hub().ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.Hub().ClientCount() != 1 {
		t.Fatal("client never registered with the hub")
	}

	srv.Hub().Broadcast(gesture.CommandNext)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var received struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(msg, &received); err != nil {
		t.Fatalf("failed to unmarshal broadcast: %v", err)
	}
	if received.Command != "next" {
		t.Errorf("broadcast command = %q, want next", received.Command)
	}
}

func TestWS_DeadClientsAreDropped(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for srv.Hub().ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// Tear the connection down, then broadcast until the hub notices
	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for srv.Hub().ClientCount() != 0 && time.Now().Before(deadline) {
		srv.Hub().Broadcast(gesture.CommandPause)
		time.Sleep(20 * time.Millisecond)
	}

	if got := srv.Hub().ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d after client closed, want 0", got)
	}
}
