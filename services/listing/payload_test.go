package listing

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"eventify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSerialize_OmitsEmptyOptionalFields(t *testing.T) {
	d := validDraft()
	d.Variants = nil

	p, err := Serialize(d)
	require.NoError(t, err)

	for _, name := range []string{FieldTags, FieldPhone, FieldWebsite, FieldSocialLinks, FieldRemovedImages} {
		_, ok := p.Get(name)
		assert.False(t, ok, name)
	}
	variants, ok := p.Get(FieldVariants)
	require.True(t, ok)
	assert.Equal(t, "[]", variants)
	assert.Empty(t, p.ServiceID)
}

func TestSerialize_SocialLinksWhenAnySet(t *testing.T) {
	d := validDraft()
	d.SocialLinks.Instagram = "https://instagram.com/lakeside"

	p, err := Serialize(d)
	require.NoError(t, err)

	links, ok := p.Get(FieldSocialLinks)
	require.True(t, ok)
	assert.JSONEq(t, `{"instagram":"https://instagram.com/lakeside"}`, links)
}

func TestPayload_MultipartRoundTrip(t *testing.T) {
	ctx := context.Background()
	previews := newMemoryPreviews()
	r := NewReconciler(previews, zap.NewNop())

	d := validDraft()
	d.PendingNewFiles = nil
	d.Mode = models.DraftModeEdit
	d.ServiceID = "svc-42"
	d.Tags = "outdoor, lawn"
	d.Phone = "+91 98450 00000"
	d.ExistingImages = existingImages(3)
	d.FAQs = []models.FAQ{{Question: "Parking?", Answer: "Yes"}}
	d.Variants = append(d.Variants, models.Variant{
		Name: "Lighting", IsCheckbox: true, Unit: models.CheckboxUnit,
		Price: models.Float(1500), MinQty: models.Int(1), MaxQty: models.Int(1), DefaultChecked: true,
	})
	require.NoError(t, r.RemoveExisting(d, 0))
	require.NoError(t, r.RemoveExisting(d, 2))
	require.NoError(t, r.AddFiles(ctx, d, []Upload{
		{Filename: "front.jpg", ContentType: "image/jpeg", Content: bytes.NewReader([]byte("front"))},
		{Filename: "stage.png", ContentType: "image/png", Content: bytes.NewReader([]byte("stage"))},
	}))

	p, err := Serialize(d)
	require.NoError(t, err)
	assert.Equal(t, "svc-42", p.ServiceID)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, p.WriteMultipart(mw, previews.Open))
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	sub, err := DecodeMultipart(form)
	require.NoError(t, err)

	assert.Equal(t, d.Title, sub.Title)
	assert.Equal(t, d.SubCategory, sub.SubCategory)
	require.NotNil(t, sub.Tags)
	assert.Equal(t, "outdoor, lawn", *sub.Tags)
	require.NotNil(t, sub.Phone)
	assert.Nil(t, sub.Website)
	assert.Nil(t, sub.SocialLinks)
	assert.Equal(t, d.Details, sub.Details)
	assert.Equal(t, d.FAQs, sub.FAQs)
	assert.Equal(t, d.Variants, sub.Variants)
	assert.Equal(t, []string{"eventify/services/img-0", "eventify/services/img-2"}, sub.RemovedImages)

	require.Len(t, sub.Files, 2)
	assert.Equal(t, "front.jpg", sub.Files[0].Filename)
	assert.Equal(t, "image/png", sub.Files[1].Header.Get("Content-Type"))
	f, err := sub.Files[1].Open()
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "stage", string(content))
}

func TestWriteMultipart_ReleasedPreview(t *testing.T) {
	previews := newMemoryPreviews()
	p := &Payload{Files: []FilePart{{Filename: "gone.jpg", Preview: "preview-404"}}}

	mw := multipart.NewWriter(io.Discard)
	err := p.WriteMultipart(mw, previews.Open)

	assert.ErrorIs(t, err, ErrPreviewReleased)
}
