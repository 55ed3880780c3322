package gate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestSubmitAllFixedSingleDaySpan(t *testing.T) {
	var mu sync.Mutex
	var payloads []submitPayload
	var authCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", authHandler("tok", &authCalls))
	mux.HandleFunc("/pc/reserve/", func(w http.ResponseWriter, r *http.Request) {
		var p submitPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		mu.Lock()
		payloads = append(payloads, p)
		mu.Unlock()
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	dates := []time.Time{
		time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2031, 5, 3, 0, 0, 0, 0, time.UTC),
	}
	outcomes := c.SubmitAll(context.Background(), dates, "12가3456", "010-1234-5678", "")
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome %d failed: %v", i, o.Err)
		}
		if !o.Date.Equal(dates[i]) {
			t.Fatalf("outcome order broken at %d", i)
		}
	}
	for _, p := range payloads {
		if p.Days != 1 {
			t.Fatalf("day span must always be 1, got %d", p.Days)
		}
		if p.Purpose != "지인/가족방문" {
			t.Fatalf("empty purpose must default to first option, got %q", p.Purpose)
		}
		if p.CarNo != "12가3456" || p.Phone != "010-1234-5678" {
			t.Fatalf("payload fields lost: %+v", p)
		}
	}
	if payloads[0].VisitDate != "2031.05.01" {
		t.Fatalf("date format: %q", payloads[0].VisitDate)
	}
}

func TestSubmitAllToleratesPartialFailure(t *testing.T) {
	var authCalls int32
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", authHandler("tok", &authCalls))
	mux.HandleFunc("/pc/reserve/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			http.Error(w, "slot taken", http.StatusConflict)
			return
		}
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	dates := []time.Time{
		time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2031, 5, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2031, 5, 3, 0, 0, 0, 0, time.UTC),
	}
	outcomes := c.SubmitAll(context.Background(), dates, "AA", "010", "기타")
	if calls != 3 {
		t.Fatalf("a failed date must not stop the rest: %d calls", calls)
	}
	ok, failed := CountOutcomes(outcomes)
	if ok != 2 || failed != 1 {
		t.Fatalf("counts: ok=%d failed=%d", ok, failed)
	}
	if outcomes[1].Err == nil {
		t.Fatal("failing date not recorded")
	}
}

func TestSubmitClampsDaySpan(t *testing.T) {
	var got submitPayload
	var authCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", authHandler("tok", &authCalls))
	mux.HandleFunc("/pc/reserve/", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	d := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := c.Submit(context.Background(), "AA", d, "010", "기타", 90); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Days != 30 {
		t.Fatalf("span not clamped: %d", got.Days)
	}
}

func TestDelete(t *testing.T) {
	var authCalls int32
	var path, method string
	var bodyLen int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", authHandler("tok", &authCalls))
	mux.HandleFunc("/pc/reserve/", func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		n, _ := io.Copy(io.Discard, r.Body)
		bodyLen = n
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Delete(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if method != http.MethodDelete || path != "/pc/reserve/42" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if bodyLen != 0 {
		t.Fatalf("delete must carry no body, got %d bytes", bodyLen)
	}
}

func TestDeleteNotFound(t *testing.T) {
	var authCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", authHandler("tok", &authCalls))
	mux.HandleFunc("/pc/reserve/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such reservation", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	err := newTestClient(srv.URL).Delete(context.Background(), 7)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 RequestError, got %v", err)
	}
}
