package handlers_test

import (
	"net/http"
	"net/url"
	"testing"
)

func TestAdminActionsAreAudited(t *testing.T) {
	app, deps := newTestApp(t, replying(teapot), testConfig())
	cl := newClient(t, app)
	sid := cl.cookies["sid"]

	entries := captureLogs(t, func() {
		cl.post("/admin/draft", url.Values{"notes": {"konvice"}, "category": {"teapots"}})
		deps.Drafts.Wait()
		cl.post("/admin/draft/accept", nil)
	})

	start, ok := findLog(entries, "admin.draft.start")
	if !ok || start.Level != "audit" || start.Session != sid {
		t.Fatalf("draft start not audited: %+v", start)
	}
	if start.Fields["category"] != "teapots" {
		t.Fatalf("unexpected fields: %+v", start.Fields)
	}
	if _, ok := start.Fields["notes"]; ok {
		t.Fatal("notes text must not be logged")
	}

	gen, ok := findLog(entries, "draft.generate.ok")
	if !ok || gen.Session != sid {
		t.Fatalf("generation not logged: %+v", gen)
	}

	accept, ok := findLog(entries, "admin.draft.accept")
	if !ok || accept.Session != sid || accept.Fields["product"] == nil {
		t.Fatalf("accept not audited: %+v", accept)
	}
}

func TestGenerationFailureIsLogged(t *testing.T) {
	app, deps := newTestApp(t, &fakeGen{reply: "not json"}, testConfig())
	cl := newClient(t, app)

	entries := captureLogs(t, func() {
		cl.post("/admin/draft", url.Values{"notes": {"hrnek"}, "category": {"cups"}})
		deps.Drafts.Wait()
	})
	e, ok := findLog(entries, "draft.generate.fail")
	if !ok || e.Level != "error" || e.Err == "" {
		t.Fatalf("failure not logged: %+v", entries)
	}
}

func TestCSRFFailureIsLogged(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	entries := captureLogs(t, func() {
		cl.cookies["csrf_"] = "forged"
		cl.post("/cart", url.Values{"productId": {"1"}})
	})
	if e, ok := findLog(entries, "csrf.fail"); !ok || e.Level != "warn" {
		t.Fatalf("csrf failure not logged: %+v", entries)
	}
}

func TestFailureEntriesCarryResponseStatus(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	entries := captureLogs(t, func() {
		cl.post("/filter", url.Values{"category": {"vases"}})
		cl.get("/search?q=" + url.QueryEscape("<script>"))
		cl.cookies["csrf_"] = "forged"
		cl.post("/cart", url.Values{"productId": {"1"}})
	})

	var validation []logEntry
	for _, e := range entries {
		if e.Action == "validation.fail" {
			validation = append(validation, e)
		}
	}
	if len(validation) != 2 {
		t.Fatalf("expected two validation entries, got %+v", entries)
	}
	for _, e := range validation {
		if e.Status != http.StatusBadRequest {
			t.Fatalf("validation entry logged status %d, want 400", e.Status)
		}
	}
	if e, ok := findLog(entries, "csrf.fail"); !ok || e.Status != http.StatusForbidden {
		t.Fatalf("csrf entry logged status %d, want 403", e.Status)
	}
}
