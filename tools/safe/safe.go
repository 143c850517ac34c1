package safe

import (
	"ChatGo/logger"
)

// Go starts a goroutine that recovers from panic, so a misbehaving detached
// task (e.g. the fire-and-forget message persistence) cannot crash the
// gateway process.
func Go(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("[safe.Go] panic recovered: %v", r)
			}
		}()
		f()
	}()
}
