package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAddToCartOpensDrawer(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	resp := cl.post("/cart", url.Values{"productId": {"1"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	s := cl.session()
	if !s.CartOpen || s.ItemCount != 1 || s.Total != 450 {
		t.Fatalf("unexpected session after add: %+v", s)
	}

	body := cl.body(cl.get("/"))
	if !strings.Contains(body, `id="cart"`) || !strings.Contains(body, "Celkem: <strong>450 Kč</strong>") {
		t.Fatal("drawer with total not rendered")
	}
}

func TestCartScenarioTotals(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	for _, id := range []string{"1", "1", "2"} {
		cl.post("/cart", url.Values{"productId": {id}})
	}
	var cart struct {
		Lines []struct {
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
			Quantity int `json:"quantity"`
		} `json:"lines"`
		ItemCount int    `json:"itemCount"`
		Total     int64  `json:"total"`
		Currency  string `json:"currency"`
	}
	cl.getJSON("/api/v1/cart", &cart)
	if cart.ItemCount != 3 || cart.Total != 2100 || cart.Currency != "CZK" || len(cart.Lines) != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if cart.Lines[0].Product.ID != "1" || cart.Lines[0].Quantity != 2 {
		t.Fatalf("first line should be two cups: %+v", cart.Lines[0])
	}

	cl.post("/cart/remove", url.Values{"productId": {"1"}})
	cl.getJSON("/api/v1/cart", &cart)
	if cart.ItemCount != 1 || cart.Total != 1200 {
		t.Fatalf("unexpected cart after remove: %+v", cart)
	}
}

func TestCartDrawerOpenClose(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	cl.post("/cart/open", nil)
	if !cl.session().CartOpen {
		t.Fatal("drawer should be open")
	}
	if !strings.Contains(cl.body(cl.get("/")), "Košík je prázdný.") {
		t.Fatal("empty cart message missing")
	}
	cl.post("/cart/close", nil)
	if cl.session().CartOpen {
		t.Fatal("drawer should be closed")
	}
}

func TestAddUnknownProduct(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	resp := cl.post("/cart", url.Values{"productId": {"404"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if s := cl.session(); s.ItemCount != 0 || s.CartOpen {
		t.Fatalf("cart changed: %+v", s)
	}
}

func TestCartRequiresCSRF(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader("productId=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := cl.do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.StatusCode)
	}
	if s := cl.session(); s.ItemCount != 0 {
		t.Fatal("cart changed without csrf token")
	}
}

func TestCartsAreSeparatePerVisitor(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	alice := newClient(t, app)
	bob := newClient(t, app)

	alice.post("/cart", url.Values{"productId": {"4"}})
	if bob.session().ItemCount != 0 {
		t.Fatal("cart leaked between visitors")
	}
}

func TestBodySizeLimit(t *testing.T) {
	app, _ := newTestApp(t, nil, testConfig())
	cl := newClient(t, app)

	form := url.Values{"csrf": {cl.cookies["csrf_"]}, "productId": {strings.Repeat("a", 2<<20)}}
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: cl.cookies["csrf_"]})
	req.AddCookie(&http.Cookie{Name: "sid", Value: cl.cookies["sid"]})
	resp, err := app.Test(req, -1)
	// Fiber returns an error instead of a response when the body is too large.
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
	if s := cl.session(); s.ItemCount != 0 {
		t.Fatal("oversized request changed the cart")
	}
}
