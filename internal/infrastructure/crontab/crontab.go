package crontab

import (
	"context"
	"errors"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

const (
	CronJobTimeout = 10 * time.Minute
	ownerPageSize  = 200
	archiveLock    = "mirror:journal-archive"
)

// ErrSkipped is returned by a LockFunc that did not run fn because another runner holds
// the lock.
var ErrSkipped = errors.New("job skipped")

// LockFunc runs fn while holding the named lock.
type LockFunc func(ctx context.Context, name string, ttl time.Duration, fn func() error) error

// Config controls the archive job. A zero ArchiveAfter disables it.
type Config struct {
	ArchiveAfter time.Duration
	Schedule     string
}

type Crontab struct {
	ctab     *crontab.Crontab
	profiles profile.Service
	journal  journal.Service
	lock     LockFunc
	cfg      Config
	log      zerolog.Logger
}

// NewCrontab builds the scheduler. lock may be nil, in which case every replica archives.
func NewCrontab(profiles profile.Service, journalService journal.Service, lock LockFunc, cfg Config, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:     crontab.New(),
		profiles: profiles,
		journal:  journalService,
		lock:     lock,
		cfg:      cfg,
		log:      log.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	if c.cfg.ArchiveAfter > 0 {
		if err := c.ctab.AddJob(c.cfg.Schedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.runArchive(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add journal archive job")
		}
		c.log.Info().Str("schedule", c.cfg.Schedule).Dur("archive_after", c.cfg.ArchiveAfter).Msg("journal archive scheduled")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) runArchive(ctx context.Context) {
	job := func() error {
		total, err := ArchiveAll(ctx, c.profiles, c.journal, c.cfg.ArchiveAfter, c.log)
		if err != nil {
			return err
		}
		c.log.Info().Int64("archived", total).Msg("journal archive run finished")
		return nil
	}

	var err error
	if c.lock != nil {
		err = c.lock(ctx, archiveLock, CronJobTimeout, job)
	} else {
		err = job()
	}
	switch {
	case errors.Is(err, ErrSkipped):
		c.log.Debug().Msg("journal archive running elsewhere")
	case err != nil:
		c.log.Error().Err(err).Msg("journal archive run failed")
	}
}

// ArchiveAll pages through every owner and archives entries older than age. A failure for
// one owner is logged and the run continues.
func ArchiveAll(ctx context.Context, profiles profile.Service, journalService journal.Service, age time.Duration, log zerolog.Logger) (int64, error) {
	var total int64
	after := ""
	for {
		ids, err := profiles.ListOwnerIDs(ctx, after, ownerPageSize)
		if err != nil {
			return total, err
		}
		for _, owner := range ids {
			n, err := journalService.ArchiveOlderThan(ctx, owner, age)
			if err != nil {
				if ctx.Err() != nil {
					return total, ctx.Err()
				}
				log.Warn().Err(err).Str("owner", owner).Msg("archive failed for owner")
				continue
			}
			total += n
		}
		if len(ids) < ownerPageSize {
			return total, nil
		}
		after = ids[len(ids)-1]
	}
}
