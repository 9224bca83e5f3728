// Package ioformat emits the two diagnostic-only output files of spec §6:
// hamk.chk (the full k-resolved Hamiltonian) and dos.chk.<g> (one per
// group, the partial density of states). Both are plain text, one
// scalar/row per line, with an explicit header, written deterministically
// so repeated runs over identical input are bitwise-identical (spec §8
// property 8).
package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/ploadapt/cmat"
)

// floatFmt is the fixed-precision format every numeric field is printed
// with; fixing it (rather than using the shortest round-trip form) is what
// makes two runs over identical input byte-identical.
const floatFmt = "%.15g"

// ioformatErrorf wraps an underlying error with call-site context.
func ioformatErrorf(tag string, err error) error {
	return fmt.Errorf("ioformat.%s: %w", tag, err)
}

// WriteHamk writes hamk.chk's contents to w: a header line of
// "nproj nkpt nspin", then nspin*nkpt*nproj*nproj lines of "Re Im" pairs,
// row varying fastest (spec §6).
//
// ham must be shaped ham[s][k], each a nproj×nproj *cmat.Dense.
func WriteHamk(w io.Writer, nproj, nkpt, nspin int, ham [][]*cmat.Dense) error {
	if len(ham) != nspin {
		return ioformatErrorf("WriteHamk", ErrShapeMismatch)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", nproj, nkpt, nspin); err != nil {
		return ioformatErrorf("WriteHamk", err)
	}
	for s := 0; s < nspin; s++ {
		if len(ham[s]) != nkpt {
			return ioformatErrorf("WriteHamk", ErrShapeMismatch)
		}
		for k := 0; k < nkpt; k++ {
			H := ham[s][k]
			if H == nil || H.Rows() != nproj || H.Cols() != nproj {
				return ioformatErrorf("WriteHamk", ErrShapeMismatch)
			}
			for col := 0; col < nproj; col++ {
				for row := 0; row < nproj; row++ {
					z := H.At(row, col)
					if _, err := fmt.Fprintf(bw, floatFmt+" "+floatFmt+"\n", real(z), imag(z)); err != nil {
						return ioformatErrorf("WriteHamk", err)
					}
				}
			}
		}
	}
	return bw.Flush()
}

// WriteDOS writes one group's dos.chk.<g> contents to w: a header line of
// "nmesh ndim nspin", then nmesh lines each "ε d[0][0] d[1][0] ... d[0][1]
// ..." — spin outer, orbital inner (spec §6).
//
// d must be shaped d[q][s][m], q in [0,ndim), s in [0,nspin), m in
// [0,nmesh).
func WriteDOS(w io.Writer, mesh []float64, ndim, nspin int, d [][][]float64) error {
	nmesh := len(mesh)
	if len(d) != ndim {
		return ioformatErrorf("WriteDOS", ErrShapeMismatch)
	}
	for q := range d {
		if len(d[q]) != nspin {
			return ioformatErrorf("WriteDOS", ErrShapeMismatch)
		}
		for s := range d[q] {
			if len(d[q][s]) != nmesh {
				return ioformatErrorf("WriteDOS", ErrShapeMismatch)
			}
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", nmesh, ndim, nspin); err != nil {
		return ioformatErrorf("WriteDOS", err)
	}
	for m := 0; m < nmesh; m++ {
		if _, err := fmt.Fprintf(bw, floatFmt, mesh[m]); err != nil {
			return ioformatErrorf("WriteDOS", err)
		}
		for s := 0; s < nspin; s++ {
			for q := 0; q < ndim; q++ {
				if _, err := fmt.Fprintf(bw, " "+floatFmt, d[q][s][m]); err != nil {
					return ioformatErrorf("WriteDOS", err)
				}
			}
		}
		if _, err := fmt.Fprint(bw, "\n"); err != nil {
			return ioformatErrorf("WriteDOS", err)
		}
	}
	return bw.Flush()
}
