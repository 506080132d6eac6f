package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/checkout"
	"github.com/your-org/mattress-storefront/internal/domain/order"
	"github.com/your-org/mattress-storefront/internal/domain/product"
	"github.com/your-org/mattress-storefront/internal/infrastructure/database/memory"
	"github.com/your-org/mattress-storefront/internal/metrics"
)

type fakeReceipts struct {
	enabled bool
	err     error
	orders  []string
}

func (f *fakeReceipts) Enabled() bool { return f.enabled }

func (f *fakeReceipts) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.orders = append(f.orders, o.OrderNumber)
	return bytes.NewBufferString("%PDF-1.4 receipt " + o.OrderNumber), nil
}

type fakeCheck struct {
	err error
}

func (f *fakeCheck) Health(context.Context) error { return f.err }

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Fields  []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"fields"`
}

type ServerSuite struct {
	suite.Suite
	server   *Server
	receipts *fakeReceipts
	cache    *fakeCheck
	cookies  []*http.Cookie
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "Mattress Storefront", Version: "test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		Cart: config.CartConfig{
			Namespace:       "cart:session",
			TTL:             24 * time.Hour,
			Store:           config.CartStoreMemory,
			MaxLiveSessions: 64,
			MaxLineQuantity: 10,
		},
		Checkout: config.CheckoutConfig{TaxRate: decimal.RequireFromString("0.06"), Currency: "USD"},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Content-Type"},
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	registry := prometheus.NewRegistry()
	catalog := product.DefaultCatalog()
	carts, err := cart.NewService(catalog, memory.NewCartRepository(), cfg, logger, metrics.NewCartWithRegisterer(registry))
	s.Require().NoError(err)
	checkoutService := checkout.NewService(carts, cfg, logger, metrics.NewCheckoutWithRegisterer(registry),
		checkout.WithClock(func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }))

	s.receipts = &fakeReceipts{enabled: true}
	s.cache = &fakeCheck{}
	s.cookies = nil

	s.server, err = NewServer(cfg, logger, Dependencies{
		Catalog:  catalog,
		Carts:    carts,
		Checkout: checkoutService,
		Receipts: s.receipts,
		Checks:   map[string]HealthChecker{"cache": s.cache},
		Gatherer: registry,
	})
	s.Require().NoError(err)
}

// do sends a request carrying the session cookies collected so far
func (s *ServerSuite) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)
	if issued := w.Result().Cookies(); len(issued) > 0 {
		s.cookies = issued
	}
	return w
}

func (s *ServerSuite) decode(w *httptest.ResponseRecorder) envelope {
	var body envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *ServerSuite) cartData(w *httptest.ResponseRecorder) cart.CartResponse {
	var resp cart.CartResponse
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &resp))
	return resp
}

func (s *ServerSuite) addItem(productID, size string, quantity int) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/v1/cart/items", gin.H{
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	})
}

func placeOrderBody() gin.H {
	return gin.H{
		"contact": gin.H{"email": "sleeper@example.com", "phone": "215-555-0134"},
		"shipping": gin.H{
			"first_name": "Sam",
			"last_name":  "Sleeper",
			"address":    "1 Market St",
			"city":       "Philadelphia",
			"state":      "PA",
			"zip_code":   "19107",
		},
		"payment": gin.H{
			"card_name":   "Sam Sleeper",
			"card_number": "4111111111111111",
			"expiry_date": "12/28",
			"cvv":         "123",
		},
	}
}

func (s *ServerSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"healthy"`)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *ServerSuite) TestReady() {
	w := s.do(http.MethodGet, "/ready", nil)
	s.Equal(http.StatusOK, w.Code)

	s.cache.err = errors.New("connection refused")
	w = s.do(http.MethodGet, "/ready", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), `"cache":"unhealthy"`)
}

func (s *ServerSuite) TestProducts_Filter() {
	w := s.do(http.MethodGet, "/api/v1/products?category=memory-foam&sort_by=price-high-low", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var products []product.Product
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &products))
	s.Require().Len(products, 2)
	for _, p := range products {
		s.Equal("memory-foam", p.Category)
	}
	s.GreaterOrEqual(products[0].EffectiveBasePrice(), products[1].EffectiveBasePrice())

	w = s.do(http.MethodGet, "/api/v1/products?sort_by=cheapest", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestProduct_Detail() {
	w := s.do(http.MethodGet, "/api/v1/products/adjustable-air", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var detail struct {
		Product     product.Product `json:"product"`
		Sizes       []product.Size  `json:"sizes"`
		DefaultSize product.Size    `json:"default_size"`
	}
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &detail))
	s.Equal("adjustable-air", detail.Product.ID)
	s.NotContains(detail.Sizes, product.SizeTwin)
	s.Equal(product.SizeQueen, detail.DefaultSize)

	w = s.do(http.MethodGet, "/api/v1/products/waterbed", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/products/waterbed/related", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerSuite) TestProductLists_Limit() {
	w := s.do(http.MethodGet, "/api/v1/products/new-arrivals?limit=1", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var products []product.Product
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &products))
	s.Len(products, 1)

	w = s.do(http.MethodGet, "/api/v1/products/featured?limit=abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/products/memory-foam-cloud/related", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &products))
	s.Require().Len(products, 1)
	s.Equal("cooling-gel", products[0].ID)
}

func (s *ServerSuite) TestCategories() {
	w := s.do(http.MethodGet, "/api/v1/categories", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var categories []product.CategoryWithProductCount
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &categories))
	s.Len(categories, 6)

	w = s.do(http.MethodGet, "/api/v1/categories/hybrid", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var detail struct {
		Category product.Category  `json:"category"`
		Products []product.Product `json:"products"`
	}
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &detail))
	s.Equal("hybrid", detail.Category.Slug)
	s.Require().Len(detail.Products, 1)
	s.Equal("luxury-hybrid", detail.Products[0].ID)

	w = s.do(http.MethodGet, "/api/v1/categories/futons", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerSuite) TestCart_Scenario() {
	w := s.addItem("memory-foam-cloud", "queen", 1)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().Len(s.cookies, 1)
	sessionCookie := s.cookies[0].Value

	resp := s.cartData(w)
	s.Equal(sessionCookie, resp.SessionID)
	s.Require().NotNil(resp.Totals.SubTotal)
	s.Equal(int64(89900), *resp.Totals.SubTotal)

	resp = s.cartData(s.addItem("memory-foam-cloud", "King", 2))
	s.Equal(3, resp.Totals.TotalQuantity)
	s.Equal(int64(89900+2*119900), *resp.Totals.SubTotal)

	w = s.do(http.MethodGet, "/api/v1/cart/count", nil)
	s.JSONEq(`{"count":3}`, string(s.decode(w).Data))

	w = s.do(http.MethodPut, "/api/v1/cart/items/memory-foam-cloud/queen", gin.H{"quantity": 0})
	s.Require().Equal(http.StatusOK, w.Code)
	resp = s.cartData(w)
	s.Len(resp.Items, 1)
	s.Equal(int64(2*119900), *resp.Totals.SubTotal)

	w = s.do(http.MethodDelete, "/api/v1/cart/items/memory-foam-cloud/king", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(s.cartData(w).IsEmpty)

	// removing again is not an error
	w = s.do(http.MethodDelete, "/api/v1/cart/items/memory-foam-cloud/king", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(sessionCookie, s.cookies[0].Value)
}

func (s *ServerSuite) TestCart_Errors() {
	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown product", http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "waterbed", "size": "queen", "quantity": 1}, http.StatusNotFound},
		{"unknown size", http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "luxury-hybrid", "size": "super-king", "quantity": 1}, http.StatusBadRequest},
		{"size not offered", http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "adjustable-air", "size": "twin", "quantity": 1}, http.StatusBadRequest},
		{"zero quantity", http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "luxury-hybrid", "size": "queen", "quantity": 0}, http.StatusBadRequest},
		{"over line limit", http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "luxury-hybrid", "size": "queen", "quantity": 11}, http.StatusBadRequest},
		{"update missing line", http.MethodPut, "/api/v1/cart/items/luxury-hybrid/queen", gin.H{"quantity": 2}, http.StatusNotFound},
		{"update without quantity", http.MethodPut, "/api/v1/cart/items/luxury-hybrid/queen", gin.H{}, http.StatusBadRequest},
		{"bad size in path", http.MethodDelete, "/api/v1/cart/items/luxury-hybrid/enormous", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		w := s.do(tc.method, tc.path, tc.body)
		s.Equal(tc.status, w.Code, tc.name)
		s.NotEmpty(s.decode(w).Error, tc.name)
	}

	w := s.do(http.MethodGet, "/api/v1/cart", nil)
	s.True(s.cartData(w).IsEmpty)
}

func (s *ServerSuite) TestCart_ValidateAndRefresh() {
	s.addItem("premium-latex", "full", 1)

	w := s.do(http.MethodPost, "/api/v1/cart/validate", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"valid":true,"issues":[]}`, string(s.decode(w).Data))

	w = s.do(http.MethodPost, "/api/v1/cart/refresh", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.cartData(w).Items, 1)
}

func (s *ServerSuite) TestCheckout_EmptyCart() {
	w := s.do(http.MethodGet, "/api/v1/checkout/summary", nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/checkout/orders", placeOrderBody())
	s.Equal(http.StatusConflict, w.Code)
}

func (s *ServerSuite) TestCheckout_Summary() {
	s.addItem("memory-foam-cloud", "queen", 1)

	w := s.do(http.MethodGet, "/api/v1/checkout/summary", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var summary checkout.Summary
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &summary))
	s.Equal(int64(89900), summary.Pricing.Subtotal)
	s.Equal(int64(5394), summary.Pricing.TaxAmount)
	s.Equal(int64(95294), summary.Pricing.TotalAmount)
	s.True(summary.Pricing.FreeShipping)
	s.Equal([]checkout.Step{checkout.StepContact, checkout.StepShipping, checkout.StepPayment}, summary.Steps)
}

func (s *ServerSuite) TestCheckout_ValidateStep() {
	w := s.do(http.MethodPost, "/api/v1/checkout/steps/contact", gin.H{"email": "sleeper@example.com", "phone": "2155550134"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/checkout/steps/shipping", gin.H{"first_name": "Sam", "state": "CA"})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	fields := map[string]string{}
	for _, f := range s.decode(w).Fields {
		fields[f.Field] = f.Rule
	}
	s.Equal("oneof", fields["state"])
	s.Equal("required", fields["zip_code"])
	s.NotContains(fields, "first_name")

	w = s.do(http.MethodPost, "/api/v1/checkout/steps/billing", gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestCheckout_PlaceOrder() {
	s.addItem("memory-foam-cloud", "king", 2)

	w := s.do(http.MethodPost, "/api/v1/checkout/orders", placeOrderBody())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var placed order.Order
	s.Require().NoError(json.Unmarshal(s.decode(w).Data, &placed))
	s.Regexp(`^ORD-20261015-[0-9A-F]{8}$`, placed.OrderNumber)
	s.Equal(int64(239800), placed.SubtotalAmount)
	s.Equal("1111", placed.Payment.CardLast4)
	s.NotContains(w.Body.String(), "4111111111111111")

	w = s.do(http.MethodGet, "/api/v1/cart/count", nil)
	s.JSONEq(`{"count":0}`, string(s.decode(w).Data))

	w = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "checkout_orders_total 1")
}

func (s *ServerSuite) TestCheckout_PlaceOrderInvalidKeepsCart() {
	s.addItem("luxury-hybrid", "queen", 1)

	body := placeOrderBody()
	body["payment"].(gin.H)["expiry_date"] = "01/20"
	w := s.do(http.MethodPost, "/api/v1/checkout/orders", body)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal("payment.expiry_date", s.decode(w).Fields[0].Field)

	w = s.do(http.MethodGet, "/api/v1/cart/count", nil)
	s.JSONEq(`{"count":1}`, string(s.decode(w).Data))
}

func (s *ServerSuite) TestCheckout_PDFReceipt() {
	s.addItem("essential-spring", "twin", 1)

	w := s.do(http.MethodPost, "/api/v1/checkout/orders", placeOrderBody(), "Accept", "application/pdf")
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Require().Len(s.receipts.orders, 1)
	s.Contains(w.Header().Get("Content-Disposition"), s.receipts.orders[0])
	s.True(strings.HasPrefix(w.Body.String(), "%PDF"))
}

func (s *ServerSuite) TestCheckout_PDFFailureFallsBackToJSON() {
	s.receipts.err = errors.New("wkhtmltopdf not found")
	s.addItem("essential-spring", "twin", 1)

	w := s.do(http.MethodPost, "/api/v1/checkout/orders", placeOrderBody(), "Accept", "application/pdf")
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/json")
	s.Contains(w.Body.String(), "ORD-20261015-")
}

func (s *ServerSuite) TestCartEvents() {
	ts := httptest.NewServer(s.server.Handler())
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	client := &http.Client{Jar: jar}

	// obtain a session cookie first
	resp, err := client.Get(ts.URL + "/api/v1/cart")
	s.Require().NoError(err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/cart/events", nil)
	s.Require().NoError(err)
	stream, err := client.Do(req)
	s.Require().NoError(err)
	defer stream.Body.Close()
	s.Equal("text/event-stream", stream.Header.Get("Content-Type"))

	reader := bufio.NewReader(stream.Body)
	snapshot := readEvent(s.T(), reader)
	s.Equal("snapshot", snapshot.Kind)
	s.True(snapshot.Cart.IsEmpty)

	payload := strings.NewReader(`{"product_id":"cooling-gel","size":"full","quantity":2}`)
	addResp, err := client.Post(ts.URL+"/api/v1/cart/items", "application/json", payload)
	s.Require().NoError(err)
	addResp.Body.Close()
	s.Require().Equal(http.StatusOK, addResp.StatusCode)

	added := readEvent(s.T(), reader)
	s.Equal(string(cart.EventItemAdded), added.Kind)
	s.Equal(2, added.Cart.Totals.TotalQuantity)
}

type streamedEvent struct {
	Kind string            `json:"kind"`
	Cart cart.CartResponse `json:"cart"`
}

// readEvent reads the next "cart" server-sent event
func readEvent(t *testing.T, reader *bufio.Reader) streamedEvent {
	t.Helper()
	name := ""
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && name == "cart":
			var event streamedEvent
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &event))
			return event
		}
	}
}
