package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/config"
	"github.com/katalvlaran/ploadapt/ksdata"
	"github.com/katalvlaran/ploadapt/plogroup"
	"github.com/katalvlaran/ploadapt/pipeline"
)

// One s-shell group, T=I1, nband=nkpt=nspin=1,
// enk=0.5, chipsi=1+0i, fermi=0.5, window (1,1). Expect enk=0,
// F[0,0,0,0]=1+0i, overlap=[[1.0]].
func TestRun_TrivialSingleBandSShell(t *testing.T) {
	data := &ksdata.KSData{
		Enk:    [][][]float64{{{0.5}}},
		Chipsi: [][][][]complex128{{{{1 + 0i}}}},
		Weight: []float64{1.0},
		Fermi:  0.5,
	}
	raw := []plogroup.PrGroup{{Site: 0, L: 0, Pr: []int{0}}}
	cfg, err := config.New(
		config.WithIntWindow(1, 1),
		config.WithGroupConfig(nil, nil, 0),
		config.WithDiagnostics(true),
	)
	require.NoError(t, err)

	res, err := pipeline.Run(data, raw, cfg)
	require.NoError(t, err)

	require.InDelta(t, 0.0, data.Enk[0][0][0], 1e-12)
	require.InDelta(t, 1.0, real(res.Projectors[0][0][0][0][0]), 1e-9)
	require.InDelta(t, 0.0, imag(res.Projectors[0][0][0][0][0]), 1e-9)
	require.InDelta(t, 1.0, real(res.Diag.Overlap[0][0].At(0, 0)), 1e-9)
}

func TestRun_NoGroups(t *testing.T) {
	data := &ksdata.KSData{
		Enk:    [][][]float64{{{0.0}}},
		Chipsi: [][][][]complex128{{{{1}}}},
		Weight: []float64{1.0},
	}
	cfg, err := config.New(config.WithIntWindow(1, 1), config.WithGroupConfig(nil, nil, 0))
	require.NoError(t, err)
	_, err = pipeline.Run(data, nil, cfg)
	require.Error(t, err)
}
