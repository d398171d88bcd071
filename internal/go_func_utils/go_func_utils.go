package go_func_utils

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn on a new goroutine. The curses UI owns the terminal and
// swallows stdout, so panics are captured into the logger before
// crashing out again.
func SafeGo(logger *log.Logger, fn func()) {
	SafeGoNamed(logger, "goroutine", fn)
}

// SafeGoNamed is SafeGo with a name for the panic log line.
func SafeGoNamed(logger *log.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
