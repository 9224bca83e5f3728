// Package pipeline orchestrates the fixed seven-stage PLO adaptor core as a
// pure function from (KSData, Config) to (Groups, Windows, Projectors,
// optional Diagnostics, optional DOS), per spec §4.9: Fermi calibration,
// group resolution, window resolution, rotation, filtering,
// orthonormalisation, and the optional diagnostics/DOS stages. It is
// single-threaded cooperative with a fixed reduction order throughout
// (spec §5); any stage's error aborts the run immediately (spec §7).
package pipeline

import (
	"fmt"

	"github.com/katalvlaran/ploadapt/cmat"
	"github.com/katalvlaran/ploadapt/config"
	"github.com/katalvlaran/ploadapt/diagnostics"
	"github.com/katalvlaran/ploadapt/ksdata"
	"github.com/katalvlaran/ploadapt/orthonorm"
	"github.com/katalvlaran/ploadapt/plogroup"
	"github.com/katalvlaran/ploadapt/plowindow"
	"github.com/katalvlaran/ploadapt/tetra"
)

// pipelineErrorf wraps an underlying error with call-site context.
func pipelineErrorf(tag string, err error) error {
	return fmt.Errorf("pipeline.%s: %w", tag, err)
}

// Diagnostics holds the optional per-group, per-spin matrices of spec §4.7.
type Diagnostics struct {
	Overlap        [][]*cmat.Dense
	DensityMatrix  [][]*cmat.Dense
	LocalHam       [][]*cmat.Dense
	FullHam        [][]*cmat.Dense // FullHam[s][k]; joint mode only, else nil
}

// DOS holds the optional Blöchl tetrahedron partial density of states,
// keyed by group ordinal (spec §4.8).
type DOS struct {
	Mesh [][]float64     // Mesh[g]
	D    [][][][]float64 // D[g][q][s][m]
}

// Result is the pipeline's complete output.
type Result struct {
	Groups     []plogroup.PrGroup
	Windows    []plowindow.PrWindow
	Projectors []cmat.Amplitudes // Projectors[g] = F_g[d][nbnd][nkpt][nspin]
	Diag       *Diagnostics      // nil unless cfg.Diag
	Dos        *DOS              // nil unless cfg.WantsDOS()
}

// Run executes the fixed pipeline over data and raw, driven by cfg.
//
// Stage 1 (Calibrate): subtract data.Fermi from every enk entry.
// Stage 2 (Groups): resolve raw projector groups against cfg.Group.
// Stage 3 (Windows): resolve one band window per group from cfg.Window.
// Stage 4 (Rotate+Filter): apply each group's T, then its window.
// Stage 5 (Orthonormalise): joint mode if len(cfg.Window)/2==1, else
// per-group.
// Stage 6 (Diagnostics): optional, gated by cfg.Diag.
// Stage 7 (DOS): optional, gated by cfg.WantsDOS().
// Complexity: O(Σ_g d_g·N·nband·nkpt·nspin) time, dominated by Stage 4's
// rotation over every group; O(Σ_g d_g·nbnd_g·nkpt·nspin) space for the
// resulting projectors.
func Run(data *ksdata.KSData, raw []plogroup.PrGroup, cfg config.Config) (*Result, error) {
	if len(raw) == 0 {
		return nil, pipelineErrorf("Run", ErrNoGroups)
	}
	if err := data.Validate(); err != nil {
		return nil, pipelineErrorf("Run", err)
	}
	// Stage 1: calibrate every enk entry against the Fermi level
	if err := data.CalibrateFermi(data.Fermi); err != nil {
		return nil, pipelineErrorf("Run", err)
	}

	// Stage 2: resolve raw projector groups
	groups, err := plogroup.Resolve(raw, cfg.Group)
	if err != nil {
		return nil, pipelineErrorf("Run", err)
	}

	// Stage 3: resolve one band window per group
	nband, nkpt, nspin := data.NBand(), data.NKpt(), data.NSpin()
	windows, err := plowindow.Resolve(cfg.Window, len(groups), nband, nkpt, nspin, data.Enk)
	if err != nil {
		return nil, pipelineErrorf("Run", err)
	}

	// Stage 4: rotate then filter each group's raw projectors
	projectors := make([]cmat.Amplitudes, len(groups))
	for g, grp := range groups {
		R, err := cmat.Rotate(grp.T, grp.Pr, data.Chipsi)
		if err != nil {
			return nil, pipelineErrorf("Run", err)
		}
		F, err := cmat.Filter(R, windows[g])
		if err != nil {
			return nil, pipelineErrorf("Run", err)
		}
		projectors[g] = F
	}

	// Stage 5: orthonormalise, jointly across groups sharing one window or
	// independently per group
	joint := len(cfg.Window)/2 == 1
	if joint {
		ogroups := make([]orthonorm.Group, len(groups))
		for g, grp := range groups {
			ogroups[g] = orthonorm.Group{Dim: grp.Dim(), F: projectors[g]}
		}
		if err := orthonorm.Joint(ogroups, windows[0]); err != nil {
			return nil, pipelineErrorf("Run", err)
		}
	} else {
		ogroups := make([]orthonorm.Group, len(groups))
		owins := make([]orthonorm.Window, len(windows))
		for g, grp := range groups {
			ogroups[g] = orthonorm.Group{Dim: grp.Dim(), F: projectors[g]}
			owins[g] = windows[g]
		}
		if err := orthonorm.PerGroup(ogroups, owins); err != nil {
			return nil, pipelineErrorf("Run", err)
		}
	}

	res := &Result{Groups: groups, Windows: windows, Projectors: projectors}

	// Stage 6: diagnostics
	if cfg.Diag {
		diag, err := runDiagnostics(groups, projectors, windows, data, joint)
		if err != nil {
			return nil, pipelineErrorf("Run", err)
		}
		res.Diag = diag
	}

	// Stage 7: tetrahedron DOS
	if cfg.WantsDOS() {
		if len(data.Tetra) == 0 {
			return nil, pipelineErrorf("Run", ksdata.ErrBadTetra)
		}
		dos, err := runDOS(groups, projectors, windows, data)
		if err != nil {
			return nil, pipelineErrorf("Run", err)
		}
		res.Dos = dos
	}

	return res, nil
}

// runDiagnostics computes per-group overlap, density-matrix, and local
// Hamiltonian blocks, plus a joint-mode full Hamiltonian when applicable.
// Complexity: O(Σ_g nkpt·nspin·d_g²·nbnd_g) time, dominated by
// diagnostics.LocalHamiltonian; O(Σ_g nkpt·nspin·d_g²) space for the
// resulting matrices.
func runDiagnostics(groups []plogroup.PrGroup, projectors []cmat.Amplitudes, windows []plowindow.PrWindow, data *ksdata.KSData, joint bool) (*Diagnostics, error) {
	diag := &Diagnostics{
		Overlap:       make([][]*cmat.Dense, len(groups)),
		DensityMatrix: make([][]*cmat.Dense, len(groups)),
		LocalHam:      make([][]*cmat.Dense, len(groups)),
	}
	for g, grp := range groups {
		d := grp.Dim()
		w := windows[g]
		ovlp, err := diagnostics.Overlap(projectors[g], d, w, data.Weight)
		if err != nil {
			return nil, err
		}
		diag.Overlap[g] = ovlp

		if data.Occupy != nil {
			dm, err := diagnostics.DensityMatrix(projectors[g], d, w, data.Weight, data.Occupy)
			if err != nil {
				return nil, err
			}
			diag.DensityMatrix[g] = dm
		}

		lh, err := diagnostics.LocalHamiltonian(projectors[g], d, w, data.Weight, data.Enk)
		if err != nil {
			return nil, err
		}
		diag.LocalHam[g] = lh
	}

	if joint && len(groups) > 0 {
		stacked, D := stackGroups(groups, projectors, windows[0])
		full, err := diagnostics.FullHamiltonian(stacked, D, windows[0], data.Enk)
		if err != nil {
			return nil, err
		}
		diag.FullHam = flattenFullHam(full)
	}

	return diag, nil
}

// stackGroups rebuilds the joint-mode stacked amplitude array from each
// group's (already orthonormalised) F, by contiguous row blocks, mirroring
// orthonorm.Joint's own stacking convention.
// Complexity: O(D·nbnd·nkpt·nspin) time and space, where D = Σ_g d_g.
func stackGroups(groups []plogroup.PrGroup, projectors []cmat.Amplitudes, w plowindow.PrWindow) (cmat.Amplitudes, int) {
	D := 0
	for _, g := range groups {
		D += g.Dim()
	}
	nkpt, nspin := w.NKpt(), w.NSpin()
	nbnd := w.NBnd()
	stacked := cmat.NewAmplitudes(D, nbnd, nkpt, nspin)
	off := 0
	for g, grp := range groups {
		d := grp.Dim()
		for i := 0; i < d; i++ {
			stacked[off+i] = projectors[g][i]
		}
		off += d
	}
	return stacked, D
}

// flattenFullHam is a pass-through kept as a named seam so callers read
// diag.FullHam's shape ([s][k]) without reaching into diagnostics directly.
func flattenFullHam(full [][]*cmat.Dense) [][]*cmat.Dense { return full }

// runDOS computes the Blöchl tetrahedron partial DOS for every group on its
// own energy mesh.
// Complexity: O(Σ_g nspin·len(mesh_g)·(len(tet)·nband + nkpt·nbnd_g·d_g))
// time, dominated by tetra.PartialDOS; O(Σ_g d_g·nspin·len(mesh_g)) space.
func runDOS(groups []plogroup.PrGroup, projectors []cmat.Amplitudes, windows []plowindow.PrWindow, data *ksdata.KSData) (*DOS, error) {
	dos := &DOS{Mesh: make([][]float64, len(groups)), D: make([][][][]float64, len(groups))}
	for g, grp := range groups {
		w := windows[g]
		mesh := tetra.BuildMesh(w, data.Enk)
		d, err := tetra.PartialDOS(projectors[g], grp.Dim(), w, data.Enk, data.Tetra, data.Volt, mesh)
		if err != nil {
			return nil, err
		}
		dos.Mesh[g] = mesh
		dos.D[g] = d
	}
	return dos, nil
}
