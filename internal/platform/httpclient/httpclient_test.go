package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatus_SendsFilterAndDecodes(t *testing.T) {
	var gotQuery, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a-1","name":"Lion","hour":12,"is_active":true,"is_eating":true}]`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c.Token = "tkn"

	hour := 12
	rows, err := c.Status(context.Background(), StatusFilter{Hour: &hour, ActivityPattern: "diurnal"})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Lion" || !rows[0].IsEating {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotQuery != "activity_pattern=diurnal&hour=12" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotAuth != "Bearer tkn" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestDoJSON_DecodesErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid input","fields":{"hour":"must be between 0 and 23"}}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = c.Status(context.Background(), StatusFilter{})
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	he := err.(*HTTPError)
	if he.Message != "invalid input" || he.Fields["hour"] == "" {
		t.Fatalf("unexpected error body: %+v", he)
	}
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "/relative"} {
		if _, err := New(u, 0); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
}
