package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Multi fans a record out to every configured sink. Each sink's failure is
// isolated: it is downgraded to a warning and the remaining sinks still get
// the record. The primary action has already completed by the time Log runs,
// so nothing here may propagate an error upward.
type Multi struct {
	sinks []Sink
}

// NewMulti creates a fan-out logger over the given sinks.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Log appends the record to every sink, warning on per-sink failure.
func (m *Multi) Log(ctx context.Context, rec Record) {
	for _, sink := range m.sinks {
		if err := sink.Append(ctx, rec); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"sink":   sink.Name(),
				"action": rec.Action,
			}).Warn("audit log append failed")
		}
	}
}

// Sinks returns the number of configured backends.
func (m *Multi) Sinks() int {
	return len(m.sinks)
}
