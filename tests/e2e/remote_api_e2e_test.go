//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Runs against a live server: go test -tags e2e ./tests/e2e
// The server must have at least two player seats.
func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	player := envOr("E2E_PLAYER", "1")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("preflight answers with cors headers", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, baseURL+"/api/ai/players", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("preflight: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("allow-origin=%q", got)
		}
	})

	t.Run("unsupported agent kind is rejected", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/ai/players/"+player+"/attach", map[string]any{"kind": "NEURAL_NETWORK"})
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d body=%s", status, string(body))
		}
	})

	t.Run("attach journal detach", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/ai/players/"+player+"/attach", map[string]any{"kind": "RANDOM", "difficulty": 7})
		if status != http.StatusCreated {
			t.Fatalf("attach status=%d body=%s", status, string(body))
		}

		var entries []any
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/ai/players/"+player+"/journal?limit=20", nil)
			if status == http.StatusOK {
				var out map[string]any
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("unmarshal journal: %v body=%s", err, string(body))
				}
				if entries = asSlice(out["entries"]); len(entries) > 0 {
					break
				}
			}
			time.Sleep(250 * time.Millisecond)
		}
		if len(entries) == 0 {
			t.Fatalf("journal stayed empty, last status=%d body=%s", status, string(body))
		}
		first := asMap(entries[0])
		if first["action_type"] == "" || first["action"] == "" {
			t.Fatalf("journal entry missing action: %v", first)
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/ai/players", nil)
		if status != http.StatusOK {
			t.Fatalf("players status=%d body=%s", status, string(body))
		}
		var players map[string]any
		if err := json.Unmarshal(body, &players); err != nil {
			t.Fatalf("unmarshal players: %v", err)
		}
		if !hasPlayer(asSlice(players["players"]), player) {
			t.Fatalf("player %s not listed: %s", player, string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/ai/players/"+player+"/detach", nil)
		if status != http.StatusOK {
			t.Fatalf("detach status=%d body=%s", status, string(body))
		}
	})

	t.Run("state and kpi", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/state?player="+player, nil)
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(body))
		}
		var state map[string]any
		if err := json.Unmarshal(body, &state); err != nil {
			t.Fatalf("unmarshal state: %v", err)
		}
		if _, ok := asMap(state["map"])["width"]; !ok {
			t.Fatalf("state missing map width")
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v", err)
		}
		if total, _ := kpi["action_total"].(float64); total <= 0 {
			t.Fatalf("expected executed actions in kpi, got %v", kpi["action_total"])
		}
	})
}

func hasPlayer(players []any, index string) bool {
	want, err := strconv.Atoi(index)
	if err != nil {
		return false
	}
	for _, p := range players {
		if idx, ok := asMap(p)["index"].(float64); ok && int(idx) == want {
			return true
		}
	}
	return false
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal body: %w", err)
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
