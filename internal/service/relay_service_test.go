package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"pathfinder/internal/config"
)

func TestRelayDisabledIsLogOnly(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewRelayService(config.DeliveryConfig{
		Endpoint: server.URL,
		// no API key
	}, zap.NewNop())

	if svc.IsEnabled() {
		t.Error("IsEnabled() = true without API key")
	}
	if err := svc.Relay(context.Background(), validPayload("sub-1")); err != nil {
		t.Errorf("Relay() error = %v, want nil in log-only mode", err)
	}
	if called {
		t.Error("log-only relay hit the endpoint")
	}
}

func TestRelaySendsPayloadAsAttachment(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode relay body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	svc := NewRelayService(config.DeliveryConfig{
		Endpoint:  server.URL,
		APIKey:    "re_test_key",
		From:      "Path Finder <submissions@pathfinder.example>",
		Recipient: "intake@pathfinder.example",
		TimeoutMS: 2000,
	}, zap.NewNop())

	if err := svc.Relay(context.Background(), validPayload("sub-123456789")); err != nil {
		t.Fatalf("Relay() error = %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	subject, _ := gotBody["subject"].(string)
	if !strings.Contains(subject, "sub-1234") {
		t.Errorf("subject = %q, want shortened submission id", subject)
	}
	attachments, _ := gotBody["attachments"].([]any)
	if len(attachments) != 1 {
		t.Fatalf("attachments = %v, want exactly one", gotBody["attachments"])
	}
}

func TestRelayReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	svc := NewRelayService(config.DeliveryConfig{
		Endpoint: server.URL,
		APIKey:   "re_test_key",
	}, zap.NewNop())

	err := svc.Relay(context.Background(), validPayload("sub-1"))
	if err == nil {
		t.Fatal("Relay() error = nil, want rejection")
	}
	if !strings.Contains(err.Error(), "invalid from address") {
		t.Errorf("Relay() error = %v, want API message included", err)
	}
}

func TestRelayUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before use

	svc := NewRelayService(config.DeliveryConfig{
		Endpoint: server.URL,
		APIKey:   "re_test_key",
	}, zap.NewNop())

	if err := svc.Relay(context.Background(), validPayload("sub-1")); err == nil {
		t.Error("Relay() error = nil against closed endpoint")
	}
}
