package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

func TestValidateSaudiMobile(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"+966512345678", true},
		{"966512345678", true},
		{"0512345678", true},
		{"512345678", true},
		{"  0512345678  ", true},
		{"0412345678", false},  // not a mobile prefix
		{"051234567", false},   // too short
		{"05123456789", false}, // too long
		{"+971512345678", false},
		{"05123a5678", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidateSaudiMobile(tc.phone), "phone %q", tc.phone)
	}
}

func newTestInquiryService(t *testing.T) (IInquiryService, context.Context) {
	t.Helper()
	database := setupTestDB(t, "raf24_test_inquiries", "inquiries")
	return NewInquiryService(database), context.Background()
}

func TestInquiryService_CreateInfersSource(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	created, err := svc.Create(ctx, NewInquiryInput{
		Name:         "  عبدالله  ",
		Phone:        "0512345678",
		Message:      "أرغب بزيارة المشروع",
		Referrer:     "https://www.instagram.com/",
		LandingQuery: "utm_source=instagram",
		UTM:          models.UTMParams{Source: "instagram", Campaign: "launch"},
	})
	require.NoError(t, err)
	assert.Equal(t, "عبدالله", created.Name)
	assert.Equal(t, models.InquiryNew, created.Status)
	assert.Equal(t, "social", created.Source)
	assert.Equal(t, "facebook", created.Platform)

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "launch", found.UTM.Campaign)
}

func TestInquiryService_CreateAdClick(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	created, err := svc.Create(ctx, NewInquiryInput{
		Name:         "سارة",
		Phone:        "+966598765432",
		LandingQuery: "gclid=abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ads", created.Source)
	assert.Equal(t, "google", created.Platform)
}

func TestInquiryService_CreateValidation(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	_, err := svc.Create(ctx, NewInquiryInput{Name: "   ", Phone: "0512345678"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, NewInquiryInput{Name: "خالد", Phone: "0112345678"})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestInquiryService_ListFilters(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	seed := []NewInquiryInput{
		{Name: "أحمد القحطاني", Phone: "0511111111", Referrer: "https://www.tiktok.com/"},
		{Name: "محمد العتيبي", Phone: "0522222222"},
		{Name: "نورة", Phone: "0533333333"},
	}
	var last *models.Inquiry
	for _, in := range seed {
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)
		last = created
	}

	_, err := svc.UpdateStatus(ctx, last.ID, models.InquiryContacted)
	require.NoError(t, err)

	contacted, total, err := svc.List(ctx, InquiryFilter{Status: string(models.InquiryContacted)}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, contacted, 1)
	assert.Equal(t, "نورة", contacted[0].Name)

	tiktok, total, err := svc.List(ctx, InquiryFilter{Platform: "tiktok"}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tiktok, 1)
	assert.Equal(t, "أحمد القحطاني", tiktok[0].Name)

	byName, _, err := svc.List(ctx, InquiryFilter{Search: "العتيبي"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "0522222222", byName[0].Phone)

	byPhone, _, err := svc.List(ctx, InquiryFilter{Search: "0511"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "أحمد القحطاني", byPhone[0].Name)
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	created, err := svc.Create(ctx, NewInquiryInput{Name: "خالد", Phone: "0544444444"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, created.ID, models.InquiryConverted)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryConverted, updated.Status)

	_, err = svc.UpdateStatus(ctx, created.ID, models.InquiryStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, primitive.NewObjectID(), models.InquiryContacted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInquiryService_NotesAndFollowUps(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	created, err := svc.Create(ctx, NewInquiryInput{Name: "خالد", Phone: "0544444444"})
	require.NoError(t, err)

	withNote, err := svc.AddNote(ctx, created.ID, "  تم الاتصال، يفضل موعد مسائي  ", "admin@example.com")
	require.NoError(t, err)
	require.Len(t, withNote.Notes, 1)
	assert.Equal(t, "تم الاتصال، يفضل موعد مسائي", withNote.Notes[0].Text)
	assert.Equal(t, "admin@example.com", withNote.Notes[0].Author)

	_, err = svc.AddNote(ctx, created.ID, "   ", "admin@example.com")
	assert.ErrorIs(t, err, ErrValidation)

	when := time.Now().Add(48 * time.Hour)
	withFollowUp, err := svc.AddFollowUp(ctx, created.ID, when, "زيارة الموقع")
	require.NoError(t, err)
	require.Len(t, withFollowUp.FollowUps, 1)
	assert.WithinDuration(t, when, withFollowUp.FollowUps[0].Date, time.Second)
}

func TestInquiryService_Delete(t *testing.T) {
	svc, ctx := newTestInquiryService(t)

	created, err := svc.Create(ctx, NewInquiryInput{Name: "خالد", Phone: "0544444444"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}
