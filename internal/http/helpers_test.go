package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"porcelain/internal/config"
	"porcelain/internal/domain"
	"porcelain/internal/drafting"
	"porcelain/internal/http/handlers"
	"porcelain/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		DBDSN:        ":memory:",
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		DraftTimeout: 5 * time.Second,
		DraftRPS:     100,
		DraftBurst:   10,
		SessionTTL:   time.Hour,
	}
}

// newTestApp builds the full app on a fresh in-memory catalog.
func newTestApp(t *testing.T, gen drafting.Generator, cfg config.Config) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if cfg.AdminAuth() {
		if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			t.Fatalf("seed admin: %v", err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	deps := handlers.NewDeps(ctx, db, cfg, gen)
	app := handlers.NewApp(deps, cfg)
	t.Cleanup(func() {
		cancel()
		deps.Drafts.Wait()
		_ = db.Close()
	})
	return app, deps
}

// fakeGen answers every prompt with reply, optionally waiting for release.
type fakeGen struct {
	reply   string
	err     error
	release chan struct{}
}

func replying(l domain.DraftListing) *fakeGen {
	return &fakeGen{reply: drafting.MarshalListing(l)}
}

func (f *fakeGen) Generate(ctx context.Context, _ string) (string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

// client keeps the sid and csrf cookies between requests like a browser.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()
	cl := &client{t: t, app: app, cookies: map[string]string{}}
	resp := cl.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / = %d", resp.StatusCode)
	}
	if cl.cookies["csrf_"] == "" || cl.cookies["sid"] == "" {
		t.Fatalf("expected csrf_ and sid cookies, got %v", cl.cookies)
	}
	return cl
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.t.Helper()
	for name, v := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: v})
	}
	resp, err := cl.app.Test(req, -1)
	if err != nil {
		cl.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c.Value
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) post(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", cl.cookies["csrf_"])
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func (cl *client) body(resp *http.Response) string {
	cl.t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		cl.t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func (cl *client) getJSON(path string, v any) {
	cl.t.Helper()
	resp := cl.get(path)
	if resp.StatusCode != http.StatusOK {
		cl.t.Fatalf("GET %s = %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		cl.t.Fatalf("decode %s: %v", path, err)
	}
}

type sessionJSON struct {
	View      string `json:"view"`
	CartOpen  bool   `json:"cartOpen"`
	Filter    string `json:"filter"`
	ItemCount int    `json:"itemCount"`
	Total     int64  `json:"total"`
	Draft     struct {
		Notes    string               `json:"notes"`
		Category string               `json:"category"`
		Pending  bool                 `json:"pending"`
		Failed   bool                 `json:"failed"`
		Listing  *domain.DraftListing `json:"listing"`
	} `json:"draft"`
	Revision uint64 `json:"revision"`
}

func (cl *client) session() sessionJSON {
	var s sessionJSON
	cl.getJSON("/api/v1/session", &s)
	return s
}

type logEntry struct {
	Level   string         `json:"level"`
	Action  string         `json:"action"`
	Session string         `json:"session"`
	Status  int            `json:"status"`
	Err     string         `json:"err"`
	Fields  map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
