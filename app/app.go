package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"obligate/config"
	"obligate/internal/db"
	"obligate/internal/logs"
	"obligate/internal/migrate"
	"obligate/internal/repo"
	"obligate/internal/report"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	cfg *config.Config
	Out io.Writer // таблицы отчёта; по умолчанию stdout

	srcDB *gorm.DB
	dstDB *gorm.DB

	source migrate.Source
	clock  clockwork.Clock
}

func (a *App) Initialize(ctx context.Context, cfg *config.Config) error {
	a.cfg = cfg
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}

	// 1) Логи
	logs.Init(logs.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})

	// 2) БД: melange (чтение) и quark (запись), часто это одна и та же база
	src, err := db.Connect(ctx, cfg.Source.Driver, cfg.Source.DSN, cfg.Database.ConnectRetries, logs.Logger)
	if err != nil {
		return fmt.Errorf("source db: %w", err)
	}
	a.srcDB = src
	a.source = repo.NewSourceStore(src)

	if cfg.SameDatabase() {
		a.dstDB = src
	} else {
		dst, err := db.Connect(ctx, cfg.Target.Driver, cfg.Target.DSN, cfg.Database.ConnectRetries, logs.Logger)
		if err != nil {
			return fmt.Errorf("target db: %w", err)
		}
		a.dstDB = dst
	}
	logs.Logger.WithFields(logrus.Fields{
		"source": cfg.Source.Driver,
		"target": cfg.Target.Driver,
		"shared": cfg.SameDatabase(),
	}).Debug("databases connected")
	return nil
}

// Flush пересоздаёт таблицы quark в целевой БД.
func (a *App) Flush(ctx context.Context) error {
	if a.dstDB == nil {
		return ErrNotInitialized
	}
	logs.Logger.Warn("flushing quark tables")
	if err := db.Flush(ctx, a.dstDB); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	logs.Logger.Infof("quark tables recreated: %v", db.Tables(a.dstDB))
	return nil
}

// Migrate выполняет один прогон. Отчёт возвращается и при ошибке прогона.
func (a *App) Migrate(ctx context.Context) (report.Summary, error) {
	if a.cfg == nil || a.source == nil {
		return report.Summary{}, ErrNotInitialized
	}
	opts := a.cfg.Migrate
	runID := uuid.NewString()
	log := logs.Logger.WithField("run_id", runID)

	var sink migrate.Sink
	if opts.DryRun {
		log.Info("dry run: quark tables are not touched")
		sink = migrate.NewMemSink()
	} else {
		if a.dstDB == nil {
			return report.Summary{}, ErrNotInitialized
		}
		if opts.Flush {
			if err := a.Flush(ctx); err != nil {
				return report.Summary{}, err
			}
		} else if err := db.Migrate(ctx, a.dstDB); err != nil {
			return report.Summary{}, err
		}
		sink = repo.NewTargetStore(a.dstDB, opts.BatchSize)
	}

	m, err := migrate.New(migrate.Config{
		Source: a.source,
		Sink:   sink,
		Logger: log,
		Clock:  a.clock,
	})
	if err != nil {
		return report.Summary{}, err
	}

	started := a.clock.Now()
	runErr := m.Run(ctx)
	sum := report.FromMigrator(runID, opts.DryRun, started, m, runErr)

	report.Render(a.Out, sum)
	if opts.Report != "" {
		if err := report.WriteFile(opts.Report, sum); err != nil {
			log.WithError(err).Error("report not written")
			if runErr == nil {
				return sum, err
			}
		}
	}
	return sum, runErr
}

func (a *App) Close() error {
	var err error
	if a.dstDB != nil && a.dstDB != a.srcDB {
		err = db.Close(a.dstDB)
	}
	if cerr := db.Close(a.srcDB); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := logs.Close(); cerr != nil && err == nil {
		err = cerr
	}
	a.srcDB, a.dstDB, a.source = nil, nil, nil
	return err
}

var ErrNotInitialized = &initError{"app not initialized (call Initialize(ctx, cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
