package clock

import (
	"time"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
)

var _ primary.Clock = (*SystemClock)(nil)

// SystemClock reads the wall clock in a fixed location so the stamp does not
// depend on the host's TZ setting.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
