package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	draftRepo "eventify/database/repository/draft"
	"eventify/middleware"
	"eventify/models"
	"eventify/services/booking"
	"eventify/services/catalog"
	"eventify/services/listing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticCategories []models.CategoryConfig

func (s staticCategories) GetAll(context.Context) ([]models.CategoryConfig, error) {
	return s, nil
}

type staticServices map[string]*models.Service

func (s staticServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, models.ErrServiceNotFound)
	}
	return svc, nil
}

type discardBookings struct{}

func (discardBookings) Create(context.Context, *models.Booking) error { return nil }

type fakeSender struct {
	payloads []*listing.Payload
}

func (f *fakeSender) Send(_ context.Context, p *listing.Payload) (*models.Service, error) {
	f.payloads = append(f.payloads, p)
	return &models.Service{ID: "published-1"}, nil
}

var categories = staticCategories{{
	ID:            "venue",
	Name:          "Venues",
	SubCategories: []string{"Lawn", "Banquet Hall"},
	Fields: []models.DynamicField{
		{Key: "capacity", Label: "Guest capacity", Type: models.FieldTypeNumber, Required: true},
		{Key: "parking", Label: "Parking available", Type: models.FieldTypeBoolean},
	},
}}

var published = &models.Service{
	ID:       "svc-1",
	Title:    "Lakeside Lawn",
	Category: "venue",
	Images:   []string{"img-a", "img-b"},
	Variants: []models.Variant{
		{ID: "v1", Name: "Day", Unit: "day", Price: models.Float(500), MinQty: models.Int(1)},
		{ID: "v2", Name: "Lights", Unit: models.CheckboxUnit, IsCheckbox: true, Price: models.Float(1), DefaultChecked: true},
	},
}

type testServer struct {
	engine *gin.Engine
	sender *fakeSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	previews, err := listing.NewDiskPreviewStore(t.TempDir())
	require.NoError(t, err)

	catalogService := catalog.NewService(categories, logger)
	require.NoError(t, catalogService.Reload(context.Background()))

	services := staticServices{published.ID: published}
	sender := &fakeSender{}
	drafts := &listing.DraftService{
		Store:      draftRepo.NewRedisDraftStore(client, time.Hour),
		Services:   services,
		Schemas:    catalogService,
		Reconciler: listing.NewReconciler(previews, logger),
		Submitter:  listing.NewSubmitter(sender, logger),
		Logger:     logger,
	}
	hb := &HandlerBundle{
		Catalog: NewCatalogHandler(catalogService),
		Drafts:  NewDraftHandler(drafts),
		Booking: NewBookingHandler(booking.NewService(services, discardBookings{}, booking.Calculator{}, logger)),
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.GET("/api/categories", hb.Catalog.ListCategories)
	r.GET("/api/categories/:id/schema", hb.Catalog.GetSchema)
	r.POST("/api/drafts", hb.Drafts.CreateDraft)
	r.GET("/api/drafts/:id", hb.Drafts.GetDraft)
	r.PATCH("/api/drafts/:id", hb.Drafts.UpdateFields)
	r.DELETE("/api/drafts/:id", hb.Drafts.DiscardDraft)
	r.PUT("/api/drafts/:id/category", hb.Drafts.ChangeCategory)
	r.POST("/api/drafts/:id/variants", hb.Drafts.AddVariant)
	r.PATCH("/api/drafts/:id/variants/:index", hb.Drafts.UpdateVariant)
	r.DELETE("/api/drafts/:id/variants/:index", hb.Drafts.RemoveVariant)
	r.POST("/api/drafts/:id/images", hb.Drafts.AddImages)
	r.DELETE("/api/drafts/:id/images/existing/:index", hb.Drafts.RemoveExistingImage)
	r.POST("/api/drafts/:id/validate", hb.Drafts.ValidateDraft)
	r.POST("/api/drafts/:id/submit", hb.Drafts.SubmitDraft)
	r.POST("/api/booking/quote", hb.Booking.Quote)
	r.POST("/api/booking", hb.Booking.CreateBooking)
	return &testServer{engine: r, sender: sender}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path string, names ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type draftBody struct {
	Draft  models.ServiceDraft   `json:"draft"`
	Fields []models.DynamicField `json:"fields"`
	Sub    []string              `json:"subCategories"`
}

func decodeDraft(t *testing.T, w *httptest.ResponseRecorder) draftBody {
	t.Helper()
	var body draftBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCatalogHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"venue"`)

	w = s.do(t, http.MethodGet, "/api/categories/unknown/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDraftFlow_CreateFillSubmit(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/drafts", map[string]string{"vendorId": "vendor-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeDraft(t, w).Draft.ID
	require.NotEmpty(t, id)

	w = s.do(t, http.MethodPut, "/api/drafts/"+id+"/category", map[string]string{"category": "venue"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeDraft(t, w)
	assert.Equal(t, []string{"Lawn", "Banquet Hall"}, body.Sub)
	assert.Len(t, body.Fields, 2)

	w = s.do(t, http.MethodPatch, "/api/drafts/"+id, map[string]any{
		"title":       "Lakeside Lawn",
		"description": "Open lawn by the lake",
		"subCategory": "Lawn",
		"location":    "Bengaluru",
		"details":     map[string]any{"capacity": 300},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/drafts/"+id+"/variants", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPatch, "/api/drafts/"+id+"/variants/0", map[string]any{"name": "Full day", "unit": "day", "price": 25000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.upload(t, "/api/drafts/"+id+"/images", "lawn.jpg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeDraft(t, w).Draft.PendingNewFiles, 1)

	w = s.do(t, http.MethodPost, "/api/drafts/"+id+"/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true,"errors":{}}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.sender.payloads, 1)
	title, _ := s.sender.payloads[0].Get(listing.FieldTitle)
	assert.Equal(t, "Lakeside Lawn", title)

	w = s.do(t, http.MethodGet, "/api/drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftHandler_SubmitInvalid(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeDraft(t, w).Draft.ID

	w = s.do(t, http.MethodPost, "/api/drafts/"+id+"/submit", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Errors map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "title")
	assert.Contains(t, body.Errors, "images")
	assert.Empty(t, s.sender.payloads)
}

func TestDraftHandler_ErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/drafts", map[string]string{"serviceId": "svc-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	d := decodeDraft(t, w).Draft
	assert.Equal(t, []string{"img-a", "img-b"}, d.ExistingImages)
	id := d.ID

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing draft", http.MethodGet, "/api/drafts/nope", nil, http.StatusNotFound},
		{"missing service", http.MethodPost, "/api/drafts", map[string]string{"serviceId": "nope"}, http.StatusNotFound},
		{"index out of range", http.MethodDelete, "/api/drafts/" + id + "/variants/9", nil, http.StatusBadRequest},
		{"non numeric index", http.MethodDelete, "/api/drafts/" + id + "/images/existing/x", nil, http.StatusBadRequest},
		{"bad detail", http.MethodPatch, "/api/drafts/" + id, map[string]any{"details": map[string]any{"capacity": "lots"}}, http.StatusBadRequest},
		{"remove existing image", http.MethodDelete, "/api/drafts/" + id + "/images/existing/0", nil, http.StatusOK},
		{"discard", http.MethodDelete, "/api/drafts/" + id, nil, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestBookingHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/booking/quote", map[string]any{
		"service":   "svc-1",
		"selection": map[string]int{"v1": 3, "v2": 1},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var quote models.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 1501.0, quote.Subtotal)

	w = s.do(t, http.MethodPost, "/api/booking/quote", map[string]any{"service": "svc-1", "selection": map[string]int{}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/booking/quote", map[string]any{"service": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/booking", map[string]any{
		"service":   "svc-1",
		"name":      "Asha",
		"email":     "asha@example.com",
		"date":      "2026-12-01",
		"selection": map[string]int{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/api/booking", map[string]any{
		"service":   "svc-1",
		"name":      "Asha",
		"email":     "asha@example.com",
		"date":      "2026-12-01",
		"selection": map[string]int{"v1": 1},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
