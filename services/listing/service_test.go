package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventify/models"
	"eventify/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryDrafts struct {
	data    map[string][]byte
	failSet bool
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{data: map[string][]byte{}}
}

func (m *memoryDrafts) Get(_ context.Context, id string) (*models.ServiceDraft, error) {
	raw, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, ErrDraftNotFound)
	}
	var d models.ServiceDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memoryDrafts) Save(_ context.Context, d *models.ServiceDraft) error {
	if m.failSet {
		return errors.New("redis unavailable")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.data[d.ID] = raw
	return nil
}

func (m *memoryDrafts) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

type staticServices map[string]*models.Service

func (s staticServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, models.ErrServiceNotFound)
	}
	return svc, nil
}

type staticSchemas struct{ c *catalog.Catalog }

func (s staticSchemas) Resolve(_ context.Context, id string) (catalog.Schema, error) {
	return s.c.Resolve(id), nil
}

type fakeSender struct {
	calls    int
	payloads []*Payload
	err      error
}

func (f *fakeSender) Send(_ context.Context, p *Payload) (*models.Service, error) {
	f.calls++
	f.payloads = append(f.payloads, p)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Service{ID: "published-1"}, nil
}

type recordedExpiry struct {
	draftID string
	at      time.Time
}

type fakeExpiry struct {
	scheduled []recordedExpiry
}

func (f *fakeExpiry) ScheduleExpiry(_ context.Context, draftID string, at time.Time) error {
	f.scheduled = append(f.scheduled, recordedExpiry{draftID, at})
	return nil
}

type serviceFixture struct {
	svc      *DraftService
	store    *memoryDrafts
	previews *memoryPreviews
	sender   *fakeSender
	expiry   *fakeExpiry
}

func newServiceFixture() *serviceFixture {
	logger := zap.NewNop()
	f := &serviceFixture{
		store:    newMemoryDrafts(),
		previews: newMemoryPreviews(),
		sender:   &fakeSender{},
		expiry:   &fakeExpiry{},
	}
	f.svc = &DraftService{
		Store:      f.store,
		Services:   staticServices{"svc-1": publishedService()},
		Schemas:    staticSchemas{catalog.New([]models.CategoryConfig{{ID: "venue", SubCategories: []string{"Lawn"}, Fields: venueFields}})},
		Reconciler: NewReconciler(f.previews, logger),
		Submitter:  NewSubmitter(f.sender, logger),
		Expiry:     f.expiry,
		TTL:        time.Hour,
		Logger:     logger,
	}
	return f
}

// fillValid drives a fresh create-mode draft to a valid state through the service.
func (f *serviceFixture) fillValid(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	title, desc, sub, loc := "Lakeside Lawn", "Open lawn", "Lawn", "Bengaluru"

	_, err := f.svc.ChangeCategory(ctx, id, "venue")
	require.NoError(t, err)
	_, err = f.svc.UpdateFields(ctx, id, FieldsPatch{
		Title: &title, Description: &desc, SubCategory: &sub, Location: &loc,
		Details: map[string]models.DetailValue{
			"capacity":        models.TextValue("300"),
			"catering_policy": models.TextValue("Outside allowed"),
		},
	})
	require.NoError(t, err)
	_, err = f.svc.AddVariant(ctx, id)
	require.NoError(t, err)
	name, unit, price := "Full day", "day", 25000.0
	_, err = f.svc.UpdateVariant(ctx, id, 0, VariantPatch{Name: &name, Unit: &unit, Price: &price})
	require.NoError(t, err)
	_, err = f.svc.AddFiles(ctx, id, uploads(1))
	require.NoError(t, err)
}

func TestDraftService_CreateSchedulesExpiry(t *testing.T) {
	f := newServiceFixture()

	d, err := f.svc.Create(context.Background(), "vendor-1", "")
	require.NoError(t, err)

	assert.Equal(t, models.DraftModeCreate, d.Mode)
	require.Len(t, f.expiry.scheduled, 1)
	assert.Equal(t, d.ID, f.expiry.scheduled[0].draftID)
	assert.WithinDuration(t, d.CreatedAt.Add(time.Hour), f.expiry.scheduled[0].at, time.Second)
}

func TestDraftService_CreateEditMode(t *testing.T) {
	f := newServiceFixture()

	d, err := f.svc.Create(context.Background(), "", "svc-1")
	require.NoError(t, err)
	assert.True(t, d.IsEditMode())
	assert.Equal(t, []string{"img-a", "img-b"}, d.ExistingImages)

	_, err = f.svc.Create(context.Background(), "", "missing")
	assert.ErrorIs(t, err, models.ErrServiceNotFound)
}

func TestDraftService_SubmitValidDraft(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)
	f.fillValid(t, d.ID)

	svc, verrs, err := f.svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, verrs.Valid())
	assert.Equal(t, "published-1", svc.ID)
	assert.Equal(t, 1, f.sender.calls)

	_, err = f.svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.Zero(t, f.previews.live())
}

func TestDraftService_SubmitInvalidDraftSendsNothing(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)

	_, verrs, err := f.svc.Submit(ctx, d.ID)

	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Equal(t, MsgImagesRequired, verrs.Fields["images"])
	assert.Zero(t, f.sender.calls)
	_, err = f.svc.Get(ctx, d.ID)
	assert.NoError(t, err)
}

func TestDraftService_SubmitTransportErrorKeepsDraft(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	transportErr := &TransportError{StatusCode: 503, Body: "maintenance"}
	f.sender.err = transportErr
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)
	f.fillValid(t, d.ID)

	_, _, err = f.svc.Submit(ctx, d.ID)

	assert.Same(t, transportErr, err)
	assert.Equal(t, 1, f.sender.calls)
	kept, err := f.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, kept.PendingNewFiles, 1)
	assert.Equal(t, 1, f.previews.live())
}

func TestDraftService_AddFilesReleasesPreviewsWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)

	f.store.failSet = true
	_, err = f.svc.AddFiles(ctx, d.ID, uploads(2))

	require.Error(t, err)
	assert.Zero(t, f.previews.live())
}

func TestDraftService_ChangeCategoryClearsDetails(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)
	f.fillValid(t, d.ID)

	updated, err := f.svc.ChangeCategory(ctx, d.ID, "catering")
	require.NoError(t, err)

	assert.Empty(t, updated.SubCategory)
	assert.Empty(t, updated.Details)
}

func TestDraftService_Expire(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	d, err := f.svc.Create(ctx, "vendor-1", "")
	require.NoError(t, err)
	_, err = f.svc.AddFiles(ctx, d.ID, uploads(2))
	require.NoError(t, err)

	require.NoError(t, f.svc.Expire(ctx, d.ID))
	_, err = f.svc.Get(ctx, d.ID)
	require.NoError(t, err, "recently touched draft must survive")
	assert.Len(t, f.expiry.scheduled, 2)

	f.svc.TTL = -time.Minute
	require.NoError(t, f.svc.Expire(ctx, d.ID))
	_, err = f.svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.Zero(t, f.previews.live())

	assert.NoError(t, f.svc.Expire(ctx, d.ID))
}

func TestDraftService_MissingDraft(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.AddVariant(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrDraftNotFound)
}
