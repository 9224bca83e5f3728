// Package ploadapt implements the Projection-on-Localized-Orbitals (PLO)
// adaptor: the subsystem that turns raw DFT projector amplitudes into
// orthonormal, site-local correlated-subspace projectors for a downstream
// DMFT engine.
//
// The pipeline is a fixed sequence of pure, single-threaded stages over
// immutable Kohn-Sham inputs:
//
//	ksdata     — KSData container, shape validation, Fermi calibration
//	plogroup   — projector-group resolution (site/l/shell/T)
//	plowindow  — per-k,s band-window resolution
//	cmat       — complex dense linear algebra (rotation, filter, eigendecomposition)
//	orthonorm  — Löwdin orthonormalisation (per-group and joint modes)
//	diagnostics — overlap, density matrix, local/full Hamiltonian
//	tetra      — Blöchl tetrahedron-method partial density of states
//	config     — validated pipeline configuration
//	pipeline   — end-to-end orchestration of the stages above
//	ioformat   — deterministic diagnostic-file emitters (hamk.chk, dos.chk.<g>)
//
//	go get github.com/katalvlaran/ploadapt
package ploadapt
