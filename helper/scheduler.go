package helper

import (
	"context"
	"fmt"
	"time"

	"cinema_factory/config"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

type LedgerReader interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]model.TransactionRecord, error)
}

type EventPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type MailSender interface {
	Send(mail utils.Mail) error
}

// Jobs holds the periodic back-office tasks.
type Jobs struct {
	Ledger        LedgerReader
	Events        EventPruner
	Mailer        MailSender
	NotifyTo      string
	RetentionDays int
	Now           func() time.Time
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// SendDailyDigest mails yesterday's ledger with the xlsx export attached.
func (j *Jobs) SendDailyDigest(ctx context.Context) error {
	if j.NotifyTo == "" {
		return nil
	}
	today := j.now()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	start := end.AddDate(0, 0, -1)

	records, err := j.Ledger.ListBetween(ctx, start, end)
	if err != nil {
		return err
	}

	summary := utils.SummarizeLedger(records)
	day := start.Format("2006-01-02")
	html, err := utils.RenderDigest(utils.DigestData{
		Day:       day,
		Count:     summary.Count,
		Succeeded: summary.Succeeded,
		Total:     summary.Collected.StringFixed(2),
	})
	if err != nil {
		return err
	}
	workbook, err := utils.LedgerWorkbook(records)
	if err != nil {
		return err
	}

	return j.Mailer.Send(utils.Mail{
		To:          []string{j.NotifyTo},
		Subject:     fmt.Sprintf("Payments digest %s", day),
		HTML:        html,
		Attachments: []utils.Attachment{{Name: "payments-" + day + ".xlsx", Data: workbook}},
	})
}

// PruneCallbackEvents drops callback audit rows past the retention window.
func (j *Jobs) PruneCallbackEvents(ctx context.Context) (int64, error) {
	if j.RetentionDays <= 0 {
		return 0, nil
	}
	return j.Events.PruneBefore(ctx, j.now().AddDate(0, 0, -j.RetentionDays))
}

// Scheduler runs the digest on a cron expression and the retention sweep daily at 03:00.
type Scheduler struct {
	digest    *cron.Cron
	retention gocron.Scheduler
}

func StartScheduler(cfg config.JobsConfig, jobs *Jobs) (*Scheduler, error) {
	digest := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	_, err := digest.AddFunc(cfg.DigestCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := jobs.SendDailyDigest(ctx); err != nil {
			log.Errorw("daily digest failed", "error", err)
			return
		}
		log.Info("daily digest sent")
	})
	if err != nil {
		return nil, fmt.Errorf("DIGEST_CRON: %w", err)
	}

	retention, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = retention.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(func() {
			n, err := jobs.PruneCallbackEvents(context.Background())
			if err != nil {
				log.Errorw("callback event retention failed", "error", err)
				return
			}
			if n > 0 {
				log.Infow("callback events pruned", "count", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	digest.Start()
	retention.Start()
	log.Infow("Schedulers started", "digest", cfg.DigestCron, "retentionDays", jobs.RetentionDays)
	return &Scheduler{digest: digest, retention: retention}, nil
}

func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.digest.Stop().Done()
	if err := s.retention.Shutdown(); err != nil {
		log.Warnw("scheduler shutdown", "error", err)
	}
	log.Info("Schedulers stopped")
}
