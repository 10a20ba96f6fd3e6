package handlers_test

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/handlers"
	"github.com/wsvendas/motostock/test/helpers"
	"github.com/wsvendas/motostock/test/mocks"
)

func TestParseCatalogFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		validate func(*testing.T, domain.CatalogFilter)
	}{
		{
			name:  "defaults",
			query: "",
			validate: func(t *testing.T, f domain.CatalogFilter) {
				assert.Equal(t, 1, f.Page)
				assert.Nil(t, f.MinPrice)
				assert.Nil(t, f.MaxPrice)
				assert.Nil(t, f.MinKm)
				assert.Nil(t, f.MaxKm)
				assert.Empty(t, f.Brands)
				assert.Equal(t, domain.ScopePublic, f.Scope)
			},
		},
		{
			name:  "all_constraints",
			query: "page=3&minPrice=10000&maxPrice=20000.50&minKm=0&maxKm=30000&brands=Honda,Outras&q=cg",
			validate: func(t *testing.T, f domain.CatalogFilter) {
				assert.Equal(t, 3, f.Page)
				require.NotNil(t, f.MinPrice)
				assert.Equal(t, "10000", f.MinPrice.String())
				assert.Equal(t, "20000.5", f.MaxPrice.String())
				require.NotNil(t, f.MinKm)
				assert.Equal(t, 0, *f.MinKm)
				assert.Equal(t, 30000, *f.MaxKm)
				assert.Equal(t, []string{"Honda", "Outras"}, f.Brands)
				assert.Equal(t, "cg", f.Query)
			},
		},
		{
			name:  "malformed_numbers_apply_no_constraint",
			query: "page=abc&minPrice=cheap&maxKm=lots",
			validate: func(t *testing.T, f domain.CatalogFilter) {
				assert.Equal(t, 1, f.Page)
				assert.Nil(t, f.MinPrice)
				assert.Nil(t, f.MaxKm)
			},
		},
		{
			name:  "non_positive_page_falls_back",
			query: "page=-2",
			validate: func(t *testing.T, f domain.CatalogFilter) {
				assert.Equal(t, 1, f.Page)
			},
		},
		{
			name:  "repeated_and_blank_brands",
			query: "brands=Honda,&brands=+Yamaha+",
			validate: func(t *testing.T, f domain.CatalogFilter) {
				assert.Equal(t, []string{"Honda", "Yamaha"}, f.Brands)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			tt.validate(t, handlers.ParseCatalogFilter(values))
		})
	}
}

func TestCatalogHandler_ListStock(t *testing.T) {
	items := helpers.CreateTestMotorcycles(2)

	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockCatalogService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:  "returns_page",
			query: "?page=2&brands=Honda",
			setupMocks: func(m *mocks.MockCatalogService) {
				m.EXPECT().Stock(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, f domain.CatalogFilter) (*domain.CatalogPage, error) {
						assert.Equal(t, 2, f.Page)
						assert.Equal(t, 12, f.PageSize)
						assert.Equal(t, []string{"Honda"}, f.Brands)
						return &domain.CatalogPage{Items: items, Page: 2, PageSize: 12, TotalCount: 14, TotalPages: 2}, nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var page domain.CatalogPage
				require.NoError(t, json.Unmarshal(body, &page))
				assert.Len(t, page.Items, 2)
				assert.Equal(t, 2, page.TotalPages)
			},
		},
		{
			name:  "store_error",
			query: "",
			setupMocks: func(m *mocks.MockCatalogService) {
				m.EXPECT().Stock(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Failed to list motorcycles"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalogService(gomock.NewController(t))
			tt.setupMocks(catalog)
			h := handlers.NewCatalogHandler(catalog, "https://motos.test", 12, helpers.TestLogger())

			w := httptest.NewRecorder()
			h.ListStock(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, w.Body.Bytes())
		})
	}
}

func TestCatalogHandler_Detail(t *testing.T) {
	m := helpers.CreateTestMotorcycle(func(m *domain.Motorcycle) {
		m.Images = nil
		m.ImageURL = "https://cdn.test/legacy.jpg"
	})

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockCatalogService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "found_with_legacy_image",
			id:   m.ID.String(),
			setupMocks: func(c *mocks.MockCatalogService) {
				c.EXPECT().Detail(gomock.Any(), m.ID).Return(m, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var got domain.Motorcycle
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, []string{"https://cdn.test/legacy.jpg"}, got.Images)
			},
		},
		{
			name: "not_found",
			id:   uuid.NewString(),
			setupMocks: func(c *mocks.MockCatalogService) {
				c.EXPECT().Detail(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("failed to get motorcycle: %w", domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Motorcycle not found"}`, string(body))
			},
		},
		{
			name:           "invalid_id",
			id:             "not-a-uuid",
			setupMocks:     func(c *mocks.MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody:   func(t *testing.T, body []byte) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalogService(gomock.NewController(t))
			tt.setupMocks(catalog)
			h := handlers.NewCatalogHandler(catalog, "", 12, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()
			h.Detail(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, w.Body.Bytes())
		})
	}
}

func TestCatalogHandler_SearchAndSold(t *testing.T) {
	catalog := mocks.NewMockCatalogService(gomock.NewController(t))
	h := handlers.NewCatalogHandler(catalog, "", 12, helpers.TestLogger())
	items := helpers.CreateTestMotorcycles(1)

	catalog.EXPECT().Search(gomock.Any(), "azul").Return(items, nil)
	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=+azul+", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"query":"azul"`)

	catalog.EXPECT().Sold(gomock.Any()).Return([]domain.Motorcycle{}, nil)
	w = httptest.NewRecorder()
	h.Sold(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/sold", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestCatalogHandler_Sitemap(t *testing.T) {
	catalog := mocks.NewMockCatalogService(gomock.NewController(t))
	id := uuid.New()
	created := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	catalog.EXPECT().SitemapEntries(gomock.Any()).
		Return([]domain.SitemapEntry{{ID: id, LastModified: created}}, nil)

	h := handlers.NewCatalogHandler(catalog, "https://motos.test/", 12, helpers.TestLogger())
	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.URLs, 4)

	assert.Equal(t, "https://motos.test/", set.URLs[0].Loc)
	assert.Equal(t, "https://motos.test/estoque", set.URLs[1].Loc)
	assert.Equal(t, "https://motos.test/quem-somos", set.URLs[2].Loc)
	assert.Equal(t, "https://motos.test/moto/"+id.String(), set.URLs[3].Loc)
	assert.Equal(t, "2024-03-10T15:00:00Z", set.URLs[3].LastMod)
}

func TestCatalogHandler_Robots(t *testing.T) {
	h := handlers.NewCatalogHandler(nil, "https://motos.test", 12, helpers.TestLogger())
	w := httptest.NewRecorder()
	h.Robots(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Disallow: /admin")
	assert.Contains(t, body, "Sitemap: https://motos.test/sitemap.xml")
}
