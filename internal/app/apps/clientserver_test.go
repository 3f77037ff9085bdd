package apps_test

import (
	"testing"
	"time"

	"gameudp/internal/app/apps"
	"gameudp/internal/app/cfg"

	"github.com/stretchr/testify/require"
)

func TestNewServerApp(t *testing.T) {
	app, err := apps.NewServerApp(
		cfg.NewPortCfg(4000),
		cfg.NewBoardCfg(80, 24, false),
		cfg.NewTimersCfg(3*time.Second, 5*time.Second, 10*time.Second),
	)
	require.NoError(t, err)
	require.Equal(t, uint16(4000), app.Port)
	require.Equal(t, uint32(80), app.Width)
}

func TestNewServerAppRejectsEmptyConfig(t *testing.T) {
	_, err := apps.NewServerApp()
	require.Error(t, err)
}

func TestNewClientApp(t *testing.T) {
	app, err := apps.NewClientApp(
		cfg.NewClientCfg("127.0.0.1:4000", 2*time.Second, true),
	)
	require.NoError(t, err)
	require.True(t, app.Demo)
}
