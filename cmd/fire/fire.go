package fire

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCount = errors.New("fire count must be positive")

// Report counts the outcome of every trigger call. Transport errors have no
// status and are counted under Failed.
type Report struct {
	Sent     int
	Statuses map[int]int
	Failed   int
}

type Fire struct {
	client *resty.Client
}

func NewFire(timeout time.Duration) *Fire {
	return &Fire{
		client: resty.New().SetTimeout(timeout),
	}
}

// Run calls the trigger endpoint config.Count times, config.Interval apart.
// It stops early when ctx is done.
func (f *Fire) Run(ctx context.Context, config Config) (Report, error) {
	report := Report{Statuses: map[int]int{}}
	if config.Count <= 0 {
		return report, ErrInvalidCount
	}

	for i := 0; i < config.Count; i++ {
		if i > 0 && config.Interval > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(config.Interval):
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Sent++
		resp, err := f.client.R().SetContext(ctx).Get(config.TargetURL)
		if err != nil {
			report.Failed++
			logrus.WithError(err).WithField("attempt", i+1).Warn("Trigger call failed")
			continue
		}
		report.Statuses[resp.StatusCode()]++
		logrus.WithFields(logrus.Fields{
			"attempt": i + 1,
			"status":  resp.StatusCode(),
			"body":    resp.String(),
		}).Debug("Trigger call answered")
	}

	return report, nil
}

// Start fires at the configured target and logs the summary.
func (f *Fire) Start(ctx context.Context) error {
	config := GetConfig()
	if f.client == nil {
		f.client = resty.New().SetTimeout(config.Timeout)
	}

	report, err := f.Run(ctx, *config)
	logrus.WithFields(logrus.Fields{
		"target":   config.TargetURL,
		"sent":     report.Sent,
		"statuses": report.Statuses,
		"failed":   report.Failed,
	}).Info("Fire finished")
	return err
}
