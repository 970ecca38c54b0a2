package primary

import "time"

type Clock interface {
	Now() time.Time
}
