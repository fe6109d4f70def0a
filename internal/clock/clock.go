// Package clock abstracts "today" so calendar validation stays testable.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock { return systemClock{} }

// Module wires the system clock into the fx graph.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
