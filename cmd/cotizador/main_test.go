package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/construinmuniza/cotizador/internal/app"
	_ "github.com/construinmuniza/cotizador/internal/testing/guard"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	assert.True(t, app.InTestMode())

	// Must return immediately without binding a port or needing config.
	main()
}
