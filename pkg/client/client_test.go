package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sproutlab/sprout/pkg/events"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/journal"
)

// serveUnix serves h on a fresh unix socket and returns its path.
func serveUnix(t *testing.T, h http.Handler) string {
	t.Helper()

	// Socket paths are length-limited, so avoid the long t.TempDir path.
	dir, err := os.MkdirTemp("", "sprout")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sock := filepath.Join(dir, "s.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}

	srv := &http.Server{Handler: h, ReadHeaderTimeout: time.Second}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return sock
}

func TestDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	_, err := c.GetVersion()
	if !errors.Is(err, ErrDaemonNotRunning) {
		t.Fatalf("err = %v, want ErrDaemonNotRunning", err)
	}
}

func TestSendErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bad", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `"percentile rank must be between 0 and 100 (exclusive)"`)
	})
	c := NewClient(serveUnix(t, mux))

	if _, err := c.Get("/nothing-here"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := c.Get("/bad"); err == nil {
		t.Fatalf("expected an error for 400")
	}
	if _, err := c.Send("PATCH", "/bad", ""); err == nil {
		t.Fatalf("expected an error for an unknown method")
	}
}

func TestTypedAPIs(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `"v1.2.3"`)
	})
	mux.HandleFunc("/sex", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `"set sex to male"`)
	})
	mux.HandleFunc("/percentile/value", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("metric") != "height" || q.Get("month") != "12" || q.Get("rank") != "50" || q.Get("metric_units") != "false" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"metric":"height","sex":"female","month":12,"rank":50,"value":29.06,"unit":"in"}`)
	})
	mux.HandleFunc("/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"e1","date":"2024-07-15T00:00:00Z","weightKg":7.9}`)
	})
	mux.HandleFunc("/entries/e1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"e1","date":"2024-07-15T00:00:00Z","heightCm":67.6}`)
	})
	c := NewClient(serveUnix(t, mux))

	v, err := c.GetVersion()
	if err != nil || v != "v1.2.3" {
		t.Fatalf("GetVersion() = %q, %v", v, err)
	}

	msg, err := c.SetSex(growth.Male)
	if err != nil {
		t.Fatal(err)
	}
	if gotBody != `"male"` {
		t.Errorf("request body = %s", gotBody)
	}
	if ParseMessage(msg) != "set sex to male" {
		t.Errorf("message = %q", ParseMessage(msg))
	}

	useMetric := false
	pv, err := c.PercentileValue(growth.Height, 12, 50, growth.Female, &useMetric)
	if err != nil {
		t.Fatal(err)
	}
	if pv.Unit != "in" || pv.Value != 29.06 {
		t.Errorf("PercentileValue = %+v", pv)
	}

	added, err := c.AddEntry(journal.Entry{Date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), WeightKg: 7.9})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID != "e1" {
		t.Errorf("added id = %q", added.ID)
	}

	got, err := c.GetEntry("e1")
	if err != nil {
		t.Fatal(err)
	}
	if got.HeightCm != 67.6 {
		t.Errorf("GetEntry = %+v", got)
	}
	if _, err := c.GetEntry("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry(missing) err = %v, want ErrNotFound", err)
	}
}

func TestSubscribe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "event:reminder.due\ndata:{\"daysSinceLastEntry\":4,\"message\":\"hi\",\"ts\":1}\n\n")
	})
	c := NewClient(serveUnix(t, mux))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}

	ev, ok := <-ch
	if !ok {
		t.Fatalf("stream closed without events")
	}
	if ev.Name != events.ReminderDue {
		t.Fatalf("event = %s", ev.Name)
	}
	p, err := events.DecodeAs[events.ReminderEvent](ev)
	if err != nil {
		t.Fatal(err)
	}
	if p.DaysSinceLastEntry != 4 {
		t.Fatalf("days = %d", p.DaysSinceLastEntry)
	}

	if _, ok := <-ch; ok {
		t.Fatalf("expected the stream to close")
	}
}

func TestSubscribeEventBoundaries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, ": keep-alive\n\n"+
			"event:entry.added\n"+
			"data:{\"id\":\"e1\",\n"+
			"data:\"date\":\"2024-07-15\"}\n\n"+
			"data:{\"key\":\"sex\"}\n\n")
	})
	c := NewClient(serveUnix(t, mux))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}

	var got []events.Event
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(got), got)
	}

	if got[0].Name != events.EntryAdded {
		t.Fatalf("first event = %q", got[0].Name)
	}
	p, err := events.DecodeAs[events.EntryEvent](got[0])
	if err != nil {
		t.Fatalf("multi-line data did not decode: %v (%s)", err, got[0].Data)
	}
	if p.ID != "e1" || p.Date != "2024-07-15" {
		t.Fatalf("payload = %+v", p)
	}

	// The event name ends with its event and must not carry over.
	if got[1].Name == events.EntryAdded {
		t.Fatalf("second event inherited the previous name")
	}
	if string(got[1].Data) != `{"key":"sex"}` {
		t.Fatalf("second data = %s", got[1].Data)
	}
}
