package whttp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendHTTPRequestSetsHeadersAndBody(t *testing.T) {
	var gotUA, gotCT, gotBody, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{RetryMax: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := SendHTTPRequest(context.Background(), &WHTTPReq{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Headers: []WHTTPHeader{{Name: "Content-Type", Value: "application/json"}},
		Body:    []byte(`{"a":1}`),
	}, client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.StatusCode != http.StatusCreated || res.BodyString != "done" {
		t.Fatalf("unexpected response: %#v", res)
	}
	if gotMethod != http.MethodPost || gotBody != `{"a":1}` {
		t.Fatalf("unexpected request: %s %q", gotMethod, gotBody)
	}
	if gotUA != USER_AGENT {
		t.Fatalf("expected user agent %q, got %q", USER_AGENT, gotUA)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected content type header, got %q", gotCT)
	}
}

func TestSendHTTPRequestRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client, _ := NewClient(ClientOptions{RetryMax: 2})
	client.RetryWaitMin = 0
	client.RetryWaitMax = 0

	res, err := SendHTTPRequest(context.Background(), &WHTTPReq{URL: srv.URL}, client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BodyString != "ok" || calls != 2 {
		t.Fatalf("expected success after 2 calls, got %q after %d", res.BodyString, calls)
	}
}

func TestNewClientRejectsBadProxy(t *testing.T) {
	if _, err := NewClient(ClientOptions{Proxy: "http://[::1"}); err == nil {
		t.Fatalf("expected error for malformed proxy")
	}
}

func TestSendHTTPRequestReturnsLastResponseAfterRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`var u = "https://dest.example/"`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{RetryMax: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := SendHTTPRequest(context.Background(), &WHTTPReq{URL: srv.URL}, client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusServiceUnavailable || res.BodyString != `var u = "https://dest.example/"` {
		t.Fatalf("unexpected response: %#v", res)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestSendHTTPRequestTransportErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(ClientOptions{RetryMax: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := SendHTTPRequest(context.Background(), &WHTTPReq{URL: url}, client); err == nil {
		t.Fatalf("expected an error for a closed server")
	}
}
