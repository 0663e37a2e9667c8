package app

import (
	"errors"
	"fmt"
)

// ErrNoActiveTab is returned by actions that need a tab when there is none
var ErrNoActiveTab = errors.New("no active tab")

// IndexError reports a tab index outside [0, Max]
type IndexError struct {
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("tab %d does not exist, there are no tabs", e.Index+1)
	}
	return fmt.Sprintf("tab %d does not exist, the last tab is %d", e.Index+1, e.Max+1)
}
