// Package guard flips the application into test mode when imported, so
// tests that touch main never start the real runtime.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("COTIZADOR_TEST_MODE") == "" {
			_ = os.Setenv("COTIZADOR_TEST_MODE", "1")
		}
	})
}
