package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcus/nsisync/internal/models"
)

func TestGetDelta(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.Delta{
			Version: 7,
			Items: []models.DeltaItem{
				{Type: models.EntityOrganization, ID: "org-1", Code: "ORG1", Name: "Acme"},
				{Type: models.EntityWarehouse, ID: "wh-1", Name: "Main",
					Data: map[string]any{"organizationId": "org-1"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	delta, err := c.GetDelta(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetDelta failed: %v", err)
	}

	if gotPath != "/v1/nsi/delta?since=3" {
		t.Errorf("request path = %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if delta.Version != 7 {
		t.Errorf("version = %d, want 7", delta.Version)
	}
	if len(delta.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(delta.Items))
	}
	if delta.Items[1].Data["organizationId"] != "org-1" {
		t.Errorf("data bag not decoded: %v", delta.Items[1].Data)
	}
}

func TestGetDeltaNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.Delta{})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.GetDelta(context.Background(), 0); err != nil {
		t.Fatalf("GetDelta failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
}

func TestGetWarehouseDelta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/nsi/warehouses/delta" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []models.DeltaItem{
				{Type: models.EntityWarehouse, ID: "wh-9", Name: "Remote"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	items, err := c.GetWarehouseDelta(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetWarehouseDelta failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "wh-9" {
		t.Errorf("items = %+v", items)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]string{
				"code": "nope", "message": "denied",
			})
		}))

		c := New(srv.URL, "bad-key")
		_, err := c.GetDelta(context.Background(), 0)
		srv.Close()

		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestServerErrorKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"code": "internal", "message": "replication lag",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	_, err := c.GetDelta(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apiError, got %T: %v", err, err)
	}
	if apiErr.Code != "internal" || apiErr.Message != "replication lag" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	c := New(srv.URL, "key")
	_, err := c.GetDelta(context.Background(), 0)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %s", h.Status)
	}
}
