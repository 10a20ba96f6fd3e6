//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wsvendas/motostock/internal/adapters/db"
	redis_a "github.com/wsvendas/motostock/internal/adapters/redis_adapter"
	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/handlers"
	"github.com/wsvendas/motostock/internal/handlers/middleware"
	"github.com/wsvendas/motostock/test/helpers"
)

const adminPassword = "e2e-secret"

type AdminWorkflowSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *AdminWorkflowSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.server = s.startTestServer()

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.client = &http.Client{Timeout: 10 * time.Second, Jar: jar}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *AdminWorkflowSuite) TearDownSuite() {
	s.server.Close()
}

func (s *AdminWorkflowSuite) SetupTest() {
	helpers.TruncateMotorcycles(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *AdminWorkflowSuite) TestAdminRoutesRequireLogin() {
	resp := s.request(http.MethodGet, "/admin/motorcycles", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.request(http.MethodPost, "/admin/login", map[string]string{"password": "wrong"})
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *AdminWorkflowSuite) TestCompleteAdminWorkflow() {
	s.login()

	// 1. Create three motorcycles
	for _, model := range []string{"CG 160 Fan", "Factor 150", "Biz 125"} {
		form := helpers.CreateTestForm()
		form.Model = model
		resp := s.request(http.MethodPost, "/admin/motorcycles", form)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	list := s.adminList()
	s.Require().Len(list.Items, 3)
	s.Equal("Biz 125", list.Items[2].Model)

	// 2. Public catalog shows all three as stock
	page := s.catalogPage("")
	s.Equal(int64(3), page.TotalCount)

	// 3. Mark the first one sold; stock and sold listings follow
	first := list.Items[0]
	resp := s.request(http.MethodPost, fmt.Sprintf("/admin/motorcycles/%s/toggle-sold", first.ID), nil)
	toggled := s.decodeList(resp)
	s.Require().NotNil(toggled.Notification)
	s.Equal(domain.NotificationSuccess, toggled.Notification.Level)
	s.True(toggled.Items[0].Sold)

	page = s.catalogPage("")
	s.Equal(int64(2), page.TotalCount)

	resp = s.request(http.MethodGet, "/catalog/sold", nil)
	var sold struct {
		Items []domain.Motorcycle `json:"items"`
	}
	s.decode(resp, &sold)
	s.Require().Len(sold.Items, 1)
	s.Equal(first.ID, sold.Items[0].ID)

	// 4. Move the last item to the top
	resp = s.request(http.MethodPost, "/admin/motorcycles/reorder", map[string]int{"from": 2, "to": 0})
	reordered := s.decodeList(resp)
	s.Require().Len(reordered.Items, 3)
	s.Equal("Biz 125", reordered.Items[0].Model)
	for i, item := range reordered.Items {
		s.Equal(i, item.DisplayOrder)
	}

	// Reload from storage to confirm the order was persisted
	list = s.adminList()
	s.Equal([]string{"Biz 125", "CG 160 Fan", "Factor 150"}, models(list.Items))

	// 5. Edit a record
	form := domain.FormFrom(&list.Items[1])
	form.Km = 900
	resp = s.request(http.MethodPut, "/admin/motorcycles/"+list.Items[1].ID.String(), form)
	updated := s.decodeList(resp)
	s.Equal(900, updated.Items[1].Km)

	// 6. Delete it and confirm the public detail is gone
	id := list.Items[1].ID
	resp = s.request(http.MethodDelete, "/admin/motorcycles/"+id.String(), nil)
	deleted := s.decodeList(resp)
	s.Len(deleted.Items, 2)

	resp = s.request(http.MethodGet, "/catalog/"+id.String(), nil)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// 7. Sitemap lists the static pages plus the two unsold records
	resp, err := s.client.Get(s.server.URL + "/sitemap.xml")
	s.Require().NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Equal(3+2, strings.Count(string(body), "<url>"))
}

func (s *AdminWorkflowSuite) TestInvalidFormIsRejected() {
	s.login()

	form := helpers.CreateTestForm()
	form.PlateEnd = "AB"
	form.Images = nil

	resp := s.request(http.MethodPost, "/admin/motorcycles", form)
	defer resp.Body.Close()
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	list := s.adminList()
	s.Empty(list.Items)
}

func (s *AdminWorkflowSuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	repo := db.NewMotorcycleRepository(s.testDB.Database, logger)
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)
	catalog := services.NewCatalogService(repo, cache, time.Minute, logger)
	feed := services.NewNotificationFeed(20, logger)
	admin := services.NewAdminSession(repo, feed, catalog, logger)

	gate := middleware.NewAdminGate(adminPassword, "")
	adminHandler := handlers.NewAdminHandler(admin, nil, feed, gate, 5<<20, false, logger)
	catalogHandler := handlers.NewCatalogHandler(catalog, "https://loja.example", 12, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/catalog", catalogHandler.ListStock)
	mux.HandleFunc("GET /api/v1/catalog/sold", catalogHandler.Sold)
	mux.HandleFunc("GET /api/v1/catalog/{id}", catalogHandler.Detail)
	mux.HandleFunc("GET /sitemap.xml", catalogHandler.Sitemap)
	mux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login)

	admins := map[string]http.HandlerFunc{
		"GET /api/v1/admin/motorcycles":                   adminHandler.List,
		"POST /api/v1/admin/motorcycles":                  adminHandler.Create,
		"POST /api/v1/admin/motorcycles/reorder":          adminHandler.Reorder,
		"PUT /api/v1/admin/motorcycles/{id}":              adminHandler.Update,
		"DELETE /api/v1/admin/motorcycles/{id}":           adminHandler.Delete,
		"POST /api/v1/admin/motorcycles/{id}/toggle-sold": adminHandler.ToggleSold,
	}
	for pattern, h := range admins {
		mux.Handle(pattern, gate.Require(h))
	}

	return httptest.NewServer(middleware.Chain(mux,
		middleware.RequestID("X-Request-ID"),
		middleware.Recovery(logger),
	))
}

func (s *AdminWorkflowSuite) login() {
	resp := s.request(http.MethodPost, "/admin/login", map[string]string{"password": adminPassword})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}

func (s *AdminWorkflowSuite) adminList() handlers.AdminListResponse {
	resp := s.request(http.MethodGet, "/admin/motorcycles", nil)
	return s.decodeList(resp)
}

func (s *AdminWorkflowSuite) catalogPage(query string) domain.CatalogPage {
	resp := s.request(http.MethodGet, "/catalog"+query, nil)
	var page domain.CatalogPage
	s.decode(resp, &page)
	return page
}

func (s *AdminWorkflowSuite) decodeList(resp *http.Response) handlers.AdminListResponse {
	var out handlers.AdminListResponse
	s.decode(resp, &out)
	return out
}

func (s *AdminWorkflowSuite) decode(resp *http.Response, dest any) {
	defer resp.Body.Close()
	s.Require().Less(resp.StatusCode, 300, "unexpected status %d", resp.StatusCode)
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dest))
}

func (s *AdminWorkflowSuite) request(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func models(items []domain.Motorcycle) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Model
	}
	return out
}

func TestAdminWorkflowSuite(t *testing.T) {
	suite.Run(t, new(AdminWorkflowSuite))
}
