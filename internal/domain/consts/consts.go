package consts

import "time"

const (
	// DefaultDBTimeout bounds every single storage call.
	DefaultDBTimeout = 3 * time.Second

	DateLayout = "2006-01-02"
)
