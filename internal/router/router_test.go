package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/i18n"
	"github.com/javajoker/vinyl-storefront/internal/models"
	"github.com/javajoker/vinyl-storefront/internal/services"
	"github.com/javajoker/vinyl-storefront/internal/utils"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Message string                 `json:"message"`
	Error   *utils.APIError        `json:"error"`
	Meta    map[string]interface{} `json:"meta"`
}

type cartLine struct {
	models.CartLineItem
	FormatLabel  string `json:"formato_label"`
	PriceDisplay string `json:"preco_formatado"`
}

type cartBody struct {
	Lines     []cartLine `json:"itens"`
	Total     float64               `json:"total"`
	ItemCount int                   `json:"quantidade_total"`
	Display   string                `json:"total_formatado"`
}

type StorefrontTestSuite struct {
	suite.Suite
	cfg     *config.Config
	catalog *services.CatalogService
	router  *gin.Engine
	cookie  *http.Cookie
}

func testConfig() *config.Config {
	cfg := &config.Config{Environment: "test"}
	cfg.Cart = config.CartConfig{
		Backend:       config.CartBackendMemory,
		KeyPrefix:     "carrinho",
		CookieName:    "sid",
		CookieMaxAge:  3600,
		MutationRate:  1000,
		MutationBurst: 1000,
	}
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://localhost:5500"}}
	cfg.Checkout = config.CheckoutConfig{URL: "checkout.html", TokenSecret: "test-secret", TokenTTL: 30}
	return cfg
}

func testItems() []models.CatalogItem {
	items := make([]models.CatalogItem, 0, 25)
	for i := 1; i <= 25; i++ {
		vinyl, cd := 20.0, 15.0
		genre := "Rock"
		if i%2 == 0 {
			genre = "Jazz"
		}
		it := models.CatalogItem{
			ID:         i,
			Name:       fmt.Sprintf("Disco %02d", i),
			Artist:     "Artista",
			Genre:      genre,
			Year:       models.NewYear(1980 + i),
			Image:      fmt.Sprintf("img/%d.jpg", i),
			Stock:      i % 3,
			VinylPrice: &vinyl,
		}
		if i <= 20 {
			it.CDPrice = &cd
		}
		items = append(items, it)
	}
	items[0].Name = "Canção Única"
	return items
}

func (s *StorefrontTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize("pt"))
}

func (s *StorefrontTestSuite) SetupTest() {
	s.cfg = testConfig()
	s.catalog = services.NewCatalogService(nil, "pt")
	s.catalog.Use(services.NewCatalog(testItems(), "pt"))
	s.router = Initialize(NewServices(s.cfg, s.catalog, services.NewMemoryCartStorage()), s.cfg)
	s.cookie = nil
}

func (s *StorefrontTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			s.cookie = c
		}
	}

	var resp envelope
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *StorefrontTestSuite) decodeCart(resp envelope) cartBody {
	var cart cartBody
	s.Require().NoError(json.Unmarshal(resp.Data, &cart))
	return cart
}

func (s *StorefrontTestSuite) TestHealth() {
	w, _ := s.do("GET", "/health", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"catalog_loaded":true`)
}

func (s *StorefrontTestSuite) TestCatalogPagination() {
	w, resp := s.do("GET", "/v1/catalog?page=3", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.True(s.T(), resp.Success)
	assert.Equal(s.T(), "25", w.Header().Get("X-Total-Count"))
	assert.Equal(s.T(), "3", w.Header().Get("X-Total-Pages"))
	assert.Equal(s.T(), "12", w.Header().Get("X-Per-Page"))

	pagination, ok := resp.Meta["pagination"].(map[string]interface{})
	s.Require().True(ok)
	assert.Equal(s.T(), float64(3), pagination["page"])
	assert.Equal(s.T(), true, pagination["has_previous"])
	assert.Equal(s.T(), false, pagination["has_next"])

	var items []map[string]interface{}
	s.Require().NoError(json.Unmarshal(resp.Data, &items))
	assert.Len(s.T(), items, 1)
	assert.Equal(s.T(), float64(25), items[0]["id"])

	w, _ = s.do("GET", "/v1/catalog?page=99", nil)
	assert.Equal(s.T(), "3", w.Header().Get("X-Page"), "page is clamped")

	w, _ = s.do("GET", "/v1/catalog?page=abc", nil)
	assert.Equal(s.T(), "1", w.Header().Get("X-Page"))
}

func (s *StorefrontTestSuite) TestCatalogFilters() {
	q := url.Values{}
	q.Add("search", "cancao")
	w, resp := s.do("GET", "/v1/catalog?"+q.Encode(), nil)
	assert.Equal(s.T(), "1", w.Header().Get("X-Total-Count"))

	var items []map[string]interface{}
	s.Require().NoError(json.Unmarshal(resp.Data, &items))
	s.Require().Len(items, 1)
	assert.Equal(s.T(), "Canção Única", items[0]["nome"])

	w, _ = s.do("GET", "/v1/catalog?genero=jazz&ano_min=1990&ano_max=2000", nil)
	// even ids with 1990 <= 1980+id <= 2000: 10, 12, ..., 20
	assert.Equal(s.T(), "6", w.Header().Get("X-Total-Count"))

	w, resp = s.do("GET", "/v1/catalog?sort=nome-asc&preco_min=abc", nil)
	assert.Equal(s.T(), "25", w.Header().Get("X-Total-Count"), "malformed bounds are unset")
	s.Require().NoError(json.Unmarshal(resp.Data, &items))
	assert.Equal(s.T(), "Canção Única", items[0]["nome"])
}

func (s *StorefrontTestSuite) TestCatalogBoundsAndGenres() {
	w, resp := s.do("GET", "/v1/catalog/bounds", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var bounds services.Bounds
	s.Require().NoError(json.Unmarshal(resp.Data, &bounds))
	assert.Equal(s.T(), services.Bounds{PriceMin: 15, PriceMax: 20, YearMin: 1981, YearMax: 2005}, bounds)

	_, resp = s.do("GET", "/v1/catalog/genres", nil)
	assert.JSONEq(s.T(), `{"generos":["Rock","Jazz"]}`, string(resp.Data))
}

func (s *StorefrontTestSuite) TestCatalogItemDetail() {
	w, resp := s.do("GET", "/v1/catalog/21", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var item map[string]interface{}
	s.Require().NoError(json.Unmarshal(resp.Data, &item))
	assert.Equal(s.T(), "Disco 21", item["nome"])
	assert.Equal(s.T(), []interface{}{"vinil"}, item["formatos"])
	assert.Equal(s.T(), map[string]interface{}{"vinil": "€20,00", "label": "Vinil: €20,00"}, item["precos"])

	w, resp = s.do("GET", "/v1/catalog/999", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), "Produto não encontrado", resp.Error.Message)

	w, _ = s.do("GET", "/v1/catalog/abc", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *StorefrontTestSuite) TestCatalogNotLoaded() {
	s.catalog = services.NewCatalogService(nil, "pt")
	s.router = Initialize(NewServices(s.cfg, s.catalog, services.NewMemoryCartStorage()), s.cfg)

	for _, path := range []string{"/v1/catalog", "/v1/catalog/bounds", "/v1/catalog/genres", "/v1/catalog/1"} {
		w, resp := s.do("GET", path, nil)
		assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code, path)
		s.Require().NotNil(resp.Error)
		assert.Equal(s.T(), "SERVICE_UNAVAILABLE", resp.Error.Code)
	}

	w, _ := s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 1, "formato": "vinil"})
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

func (s *StorefrontTestSuite) TestCartFlow() {
	w, resp := s.do("GET", "/v1/cart", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	s.Require().NotNil(s.cookie)
	assert.Equal(s.T(), 0, s.decodeCart(resp).ItemCount)

	for i := 0; i < 2; i++ {
		w, resp = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 3, "formato": "vinil"})
		assert.Equal(s.T(), http.StatusOK, w.Code)
	}
	assert.Equal(s.T(), "Disco 03 adicionado ao carrinho", resp.Message)

	cart := s.decodeCart(resp)
	s.Require().Len(cart.Lines, 1)
	assert.Equal(s.T(), 2, cart.Lines[0].Quantity)
	assert.Equal(s.T(), "Vinil", cart.Lines[0].FormatLabel)
	assert.Equal(s.T(), "€20,00", cart.Lines[0].PriceDisplay)
	assert.Equal(s.T(), 40.0, cart.Total)
	assert.Equal(s.T(), "€40,00", cart.Display)

	_, resp = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 4, "formato": "CD"})
	assert.Equal(s.T(), 55.0, s.decodeCart(resp).Total)

	w, resp = s.do("PUT", "/v1/cart/items/0", map[string]interface{}{"quantidade": 0})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	cart = s.decodeCart(resp)
	s.Require().Len(cart.Lines, 1)
	assert.Equal(s.T(), 4, cart.Lines[0].ItemID)

	w, resp = s.do("PUT", "/v1/cart/items/0", map[string]interface{}{"quantidade": 3})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), 45.0, s.decodeCart(resp).Total)

	w, resp = s.do("DELETE", "/v1/cart/items/7", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code, "out-of-range remove is a no-op")
	assert.Equal(s.T(), 3, s.decodeCart(resp).ItemCount)

	w, resp = s.do("DELETE", "/v1/cart", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), 0, s.decodeCart(resp).ItemCount)
}

func (s *StorefrontTestSuite) TestCartIsScopedToSession() {
	s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 3, "formato": "vinil"})

	s.cookie = nil
	_, resp := s.do("GET", "/v1/cart", nil)
	assert.Equal(s.T(), 0, s.decodeCart(resp).ItemCount)
}

func (s *StorefrontTestSuite) TestAddItemRejections() {
	w, resp := s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 3})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Por favor selecione um formato", resp.Error.Message)

	w, resp = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 3, "formato": "cassete"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", resp.Error.Code)

	w, _ = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 999, "formato": "vinil"})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	for _, id := range []int{0, -1} {
		w, resp = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": id, "formato": "vinil"})
		assert.Equal(s.T(), http.StatusNotFound, w.Code, "id %d", id)
		assert.Equal(s.T(), "Produto não encontrado", resp.Error.Message)
	}

	w, resp = s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 22, "formato": "cd"})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), "UNPROCESSABLE", resp.Error.Code)

	_, resp = s.do("GET", "/v1/cart", nil)
	assert.Equal(s.T(), 0, s.decodeCart(resp).ItemCount, "rejected adds leave the cart unchanged")
}

func (s *StorefrontTestSuite) TestCheckoutHandoff() {
	w, resp := s.do("POST", "/v1/checkout", nil)
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), "O seu carrinho está vazio", resp.Error.Message)

	s.do("POST", "/v1/cart/items", map[string]interface{}{"id": 5, "formato": "cd"})
	w, resp = s.do("POST", "/v1/checkout", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var handoff services.Handoff
	s.Require().NoError(json.Unmarshal(resp.Data, &handoff))
	assert.Equal(s.T(), "checkout.html?token="+handoff.Token, handoff.RedirectURL)

	// the checkout page has no session cookie, only the token
	s.cookie = nil
	w, resp = s.do("GET", "/v1/checkout/cart?token="+url.QueryEscape(handoff.Token), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(s.T(), 15.0, s.decodeCart(resp).Total)

	w, _ = s.do("GET", "/v1/checkout/cart?token=forged", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	w, _ = s.do("GET", "/v1/checkout/cart", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *StorefrontTestSuite) TestBuyNow() {
	w, resp := s.do("POST", "/v1/checkout/buy-now", map[string]interface{}{"id": 7})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Por favor selecione um formato", resp.Error.Message)

	w, _ = s.do("POST", "/v1/checkout/buy-now", map[string]interface{}{"id": 23, "formato": "cd"})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)

	w, resp = s.do("POST", "/v1/checkout/buy-now", map[string]interface{}{"id": 7, "formato": "vinil"})
	s.Require().Equal(http.StatusOK, w.Code)

	var handoff services.Handoff
	s.Require().NoError(json.Unmarshal(resp.Data, &handoff))
	assert.Equal(s.T(), 1, handoff.Cart.ItemCount)
	assert.NotEmpty(s.T(), handoff.Token)
}

func (s *StorefrontTestSuite) TestEnglishMessages() {
	req, _ := http.NewRequest("GET", "/v1/catalog/999", nil)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "Product not found", resp.Error.Message)

	req, _ = http.NewRequest("GET", "/v1/catalog/21", nil)
	req.Header.Set("Accept-Language", "en")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var item map[string]interface{}
	s.Require().NoError(json.Unmarshal(resp.Data, &item))
	assert.Equal(s.T(), map[string]interface{}{"vinil": "€20,00", "label": "Vinyl: €20,00"}, item["precos"])
}

func TestStorefrontSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}
