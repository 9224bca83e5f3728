package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/config"
	"github.com/katalvlaran/ploadapt/plogroup"
	"github.com/katalvlaran/ploadapt/plowindow"
)

func TestNew_Valid(t *testing.T) {
	c, err := config.New(
		config.WithIntWindow(1, 4),
		config.WithGroupConfig([]string{"0"}, []plogroup.Shell{plogroup.ShellDT2g}, 1),
		config.WithSmear(config.SmearTetra),
		config.WithDiagnostics(true),
	)
	require.NoError(t, err)
	require.True(t, c.WantsDOS())
	require.True(t, c.Diag)
	require.Len(t, c.Window, 2)
}

func TestNew_BadWindowLen(t *testing.T) {
	_, err := config.New(
		config.WithWindow(plowindow.Int(1), plowindow.Int(2), plowindow.Int(3)),
		config.WithGroupConfig(nil, nil, 0),
	)
	require.ErrorIs(t, err, config.ErrBadWindowLen)
}

func TestNew_GroupInconsistent(t *testing.T) {
	_, err := config.New(
		config.WithIntWindow(1, 1),
		config.WithGroupConfig([]string{"0"}, []plogroup.Shell{plogroup.ShellD}, 2),
	)
	require.ErrorIs(t, err, config.ErrConfigInconsistent)
}

func TestNew_UnknownSmear(t *testing.T) {
	_, err := config.New(
		config.WithIntWindow(1, 1),
		config.WithGroupConfig(nil, nil, 0),
		config.WithSmear(config.Smear("bogus")),
	)
	require.ErrorIs(t, err, config.ErrUnknownSmear)
}
