package helper

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"cinema_factory/config"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionKey(t *testing.T) {
	tests := map[string]string{
		"vfx":                "vfx",
		"Virtual-Production": "virtualproduction",
		"StageUnreal":        "stageunreal",
		"virtual production": "virtualproduction",
	}
	for in, want := range tests {
		assert.Equal(t, want, SectionKey(in), in)
	}
	assert.Equal(t, "cinema-factory/gallery/guestlecture", UploadFolder("Gallery", "guestLecture"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("cfadmin123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("cfadmin123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(model.TokenClaim{Username: "cfadmin"}, "s3cret", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	_, err = ParseToken(token, "other")
	assert.Error(t, err)

	expired, err := GenerateAccessToken(model.TokenClaim{Username: "cfadmin"}, "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "s3cret")
	assert.Error(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("user", parsed)
		claim, err := GetInfoAccountFromToken(c)
		if err != nil {
			return err
		}
		return c.SendString(claim.Username)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type fakeLedger struct {
	from, to time.Time
	records  []model.TransactionRecord
}

func (f *fakeLedger) ListBetween(_ context.Context, from, to time.Time) ([]model.TransactionRecord, error) {
	f.from, f.to = from, to
	return f.records, nil
}

type fakePruner struct{ cutoff time.Time }

func (f *fakePruner) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 4, nil
}

type fakeMailer struct{ sent []utils.Mail }

func (f *fakeMailer) Send(m utils.Mail) error {
	f.sent = append(f.sent, m)
	return nil
}

func TestSendDailyDigest(t *testing.T) {
	now := time.Date(2024, 3, 8, 8, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{records: []model.TransactionRecord{
		{Amount: decimal.NewFromInt(45000), Status: "success"},
		{Amount: decimal.NewFromInt(30000), Status: "success"},
		{Amount: decimal.NewFromInt(5000), Status: "failed"},
	}}
	mailer := &fakeMailer{}
	jobs := &Jobs{Ledger: ledger, Mailer: mailer, NotifyTo: "office@example.com", Now: func() time.Time { return now }}

	require.NoError(t, jobs.SendDailyDigest(context.Background()))

	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), ledger.from)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), ledger.to)
	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "Payments digest 2024-03-07", mail.Subject)
	assert.Contains(t, mail.HTML, "3 records, 2 successful, 75000.00 collected.")
	require.Len(t, mail.Attachments, 1)
	assert.Equal(t, "payments-2024-03-07.xlsx", mail.Attachments[0].Name)
}

func TestSendDailyDigestWithoutRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	jobs := &Jobs{Ledger: &fakeLedger{}, Mailer: mailer}
	require.NoError(t, jobs.SendDailyDigest(context.Background()))
	assert.Empty(t, mailer.sent)
}

func TestPruneCallbackEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	pruner := &fakePruner{}
	jobs := &Jobs{Events: pruner, RetentionDays: 90, Now: func() time.Time { return now }}

	n, err := jobs.PruneCallbackEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, now.AddDate(0, 0, -90), pruner.cutoff)
}

func TestStartSchedulerRejectsBadCron(t *testing.T) {
	_, err := StartScheduler(config.JobsConfig{DigestCron: "not a cron"}, &Jobs{})
	assert.Error(t, err)
}

func TestStartAndStopScheduler(t *testing.T) {
	s, err := StartScheduler(config.JobsConfig{DigestCron: "0 8 * * *", EventRetentionDays: 90}, &Jobs{RetentionDays: 90})
	require.NoError(t, err)
	s.Stop()
}

func TestExtractPublicID(t *testing.T) {
	tests := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712345678/cinema-factory/vfx/banner/abc123.jpg": "cinema-factory/vfx/banner/abc123",
		"https://res.cloudinary.com/demo/video/upload/cinema-factory/gallery/studentworks/clip.mp4":     "cinema-factory/gallery/studentworks/clip",
		"https://res.cloudinary.com/demo/image/upload/v2/logo.png":                                       "logo",
		"https://example.com/not-cloudinary.png":                                                         "",
		"":                                                                                               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractPublicID(in), in)
	}
}
