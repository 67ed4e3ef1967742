package service

import "time"

// Clock supplies the current instant. Services take it as a constructor
// argument so tests control time deterministically; production wiring passes
// time.Now.
type Clock func() time.Time
