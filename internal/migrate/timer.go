package migrate

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Timer выполняет операцию под меткой и замеряет время.
// Ошибку операции логирует и возвращает без изменений.
type Timer struct {
	clock clockwork.Clock
	log   logrus.FieldLogger
}

func NewTimer(clock clockwork.Clock, log logrus.FieldLogger) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{clock: clock, log: log}
}

func (t *Timer) Do(label string, fn func() error) (time.Duration, error) {
	start := t.clock.Now()
	t.log.Infof("start: %s", label)
	if err := fn(); err != nil {
		t.log.WithError(err).Errorf("error during %s", label)
		return t.clock.Since(start), err
	}
	d := t.clock.Since(start)
	t.log.Infof("end  : %s", label)
	t.log.WithField("seconds", d.Seconds()).Infof("delta: %s = %s", label, d)
	return d, nil
}
