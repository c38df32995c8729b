package migrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Source Source
	Sink   Sink
	Logger logrus.FieldLogger
	Clock  clockwork.Clock
}

func (c *Config) Validate() error {
	if c.Source == nil {
		return errors.New("source is required")
	}
	if c.Sink == nil {
		return errors.New("sink is required")
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Timing — длительность одной стадии.
type Timing struct {
	Label    string        `yaml:"label"`
	Duration time.Duration `yaml:"duration"`
}

// Migrator ведёт прогон по стадиям и не даёт запустить стадию раньше,
// чем завершится предыдущая: каждая следующая читает кэш, собранный прошлой.
type Migrator struct {
	env     *Env
	timer   *Timer
	state   State
	timings []Timing
}

func New(cfg Config) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env := &Env{
		Source: cfg.Source,
		Sink:   cfg.Sink,
		Cache:  NewCache(),
		Stats:  &Stats{},
		Log:    cfg.Logger,
	}
	return &Migrator{
		env:   env,
		timer: NewTimer(cfg.Clock, cfg.Logger),
		state: StateStart,
	}, nil
}

func (m *Migrator) State() State { return m.state }

func (m *Migrator) Stats() Stats { return *m.env.Stats }

func (m *Migrator) Timings() []Timing { return append([]Timing(nil), m.timings...) }

func (m *Migrator) Total() time.Duration {
	var total time.Duration
	for _, t := range m.timings {
		total += t.Duration
	}
	return total
}

// Step выполняет одну стадию. Стадия запускается только из своего исходного состояния.
func (m *Migrator) Step(ctx context.Context, stage Stage) error {
	def, ok := stageDefs[stage]
	if !ok {
		return fmt.Errorf("unknown stage %d", int(stage))
	}
	if m.state != def.from {
		return fmt.Errorf("%w: %q requires state %s, current %s", ErrOutOfOrder, def.label, def.from, m.state)
	}
	if err := ctx.Err(); err != nil {
		m.state = StateFailed
		return err
	}

	d, err := m.timer.Do(def.label, func() error { return m.run(ctx, stage) })
	m.timings = append(m.timings, Timing{Label: def.label, Duration: d})
	if err != nil {
		m.state = StateFailed
		return err
	}
	m.state = def.to
	return nil
}

func (m *Migrator) run(ctx context.Context, stage Stage) error {
	switch stage {
	case StageNetworks:
		return MigrateNetworks(ctx, m.env)
	case StagePorts:
		return MigrateInterfaces(ctx, m.env)
	case StageAssociate:
		AssociatePorts(m.env)
		return nil
	case StageMacs:
		return MigrateMacs(ctx, m.env)
	case StageCommit:
		return m.env.Sink.Commit(ctx)
	}
	return fmt.Errorf("unknown stage %d", int(stage))
}

// Run — все стадии по порядку, затем итог по времени.
func (m *Migrator) Run(ctx context.Context) error {
	for _, s := range Stages {
		if err := m.Step(ctx, s); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	m.env.Log.Infof("Total: %s", m.Total())
	return nil
}
