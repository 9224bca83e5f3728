// Package cmat provides dense complex-matrix primitives for the PLO
// pipeline: construction, products, conjugate-transpose, and a Hermitian
// eigendecomposition built on top of gonum's real-symmetric eigensolver via
// the standard real-doubling embedding of a Hermitian eigenproblem.
//
// A Hermitian H is embedded as the real symmetric 2n×2n matrix
//
//	B = [ Re(H)  -Im(H) ]
//	    [ Im(H)   Re(H) ]
//
// whose eigenvalues are exactly those of H, each with multiplicity two;
// an eigenvector (u,v) of B with u,v ∈ R^n lifts to the complex eigenvector
// u + iv of H at the same eigenvalue. This lets EigenHermitian reuse
// gonum.org/v1/gonum/mat's EigenSym (grounded on
// _examples/other_examples/MirzaevaIV-goHF__RHF.go's use of mat.SymDense /
// mat.EigenSym) instead of hand-rolling a complex Jacobi sweep.
package cmat

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// hermTol bounds how far a matrix may deviate from exact Hermiticity.
const hermTol = 1e-9

// cmatErrorf wraps an underlying error with call-site context.
func cmatErrorf(tag string, err error) error {
	return fmt.Errorf("cmat.%s: %w", tag, err)
}

// Dense is a row-major dense complex matrix.
type Dense struct {
	r, c int
	data []complex128
}

// NewDense allocates a zero r×c Dense.
// Complexity: O(r·c) time and memory.
func NewDense(r, c int) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, cmatErrorf("NewDense", ErrDimensionMismatch)
	}
	return &Dense{r: r, c: c, data: make([]complex128, r*c)}, nil
}

// NewDenseFrom builds a Dense from a row-major flat slice; len(data) must
// equal r*c.
// Complexity: O(r·c) time and memory (copies data).
func NewDenseFrom(r, c int, data []complex128) (*Dense, error) {
	if r <= 0 || c <= 0 || len(data) != r*c {
		return nil, cmatErrorf("NewDenseFrom", ErrDimensionMismatch)
	}
	out := make([]complex128, r*c)
	copy(out, data)
	return &Dense{r: r, c: c, data: out}, nil
}

// Rows returns the row count.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// At returns m[i][j].
// Complexity: O(1).
func (m *Dense) At(i, j int) complex128 { return m.data[i*m.c+j] }

// Set assigns m[i][j] = v.
// Complexity: O(1).
func (m *Dense) Set(i, j int, v complex128) { m.data[i*m.c+j] = v }

// Clone returns a deep copy.
// Complexity: O(r·c) time and memory.
func (m *Dense) Clone() *Dense {
	out := make([]complex128, len(m.data))
	copy(out, m.data)
	return &Dense{r: m.r, c: m.c, data: out}
}

// ConjTranspose returns m†.
// Complexity: O(r·c) time and memory.
func (m *Dense) ConjTranspose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, m.r*m.c)}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.Set(j, i, complexConj(m.At(i, j))) // transpose + conjugate in one pass
		}
	}
	return out
}

func complexConj(z complex128) complex128 { return complex(real(z), -imag(z)) }

// Mul computes a×b.
// Stage 1 (Validate): nil-checks and inner-dimension match (a.c == b.r).
// Stage 2 (Prepare): allocate the a.r×b.c result.
// Stage 3 (Execute): schoolbook triple loop, skipping zero entries of a.
// Complexity: O(a.r·a.c·b.c) time, O(a.r·b.c) space.
func Mul(a, b *Dense) (*Dense, error) {
	// Stage 1: nil-checks and shape match
	if a == nil || b == nil {
		return nil, cmatErrorf("Mul", ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, cmatErrorf("Mul", ErrDimensionMismatch)
	}

	// Stage 2: allocate result
	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, cmatErrorf("Mul", err)
	}

	// Stage 3: accumulate, skipping structural zeros in a
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik := a.At(i, k)
			if aik == 0 {
				continue
			}
			for j := 0; j < b.c; j++ {
				out.data[i*out.c+j] += aik * b.At(k, j)
			}
		}
	}
	return out, nil
}

// MulDagger computes m×m†, the Gram matrix of m's rows.
// Complexity: O(r²·c) time, O(r²) space (dominated by the Mul call).
func MulDagger(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, cmatErrorf("MulDagger", ErrNilMatrix)
	}
	return Mul(m, m.ConjTranspose())
}

// MulDagger2 computes a×b†.
// Complexity: O(a.r·a.c·b.r) time, O(a.r·b.r) space.
func MulDagger2(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, cmatErrorf("MulDagger2", ErrNilMatrix)
	}
	return Mul(a, b.ConjTranspose())
}

// Scale returns alpha*m.
// Complexity: O(r·c) time and memory.
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if m == nil {
		return nil, cmatErrorf("Scale", ErrNilMatrix)
	}
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= alpha
	}
	return out, nil
}

// Sub computes a-b element-wise.
// Complexity: O(r·c) time and memory.
func Sub(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, cmatErrorf("Sub", ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return nil, cmatErrorf("Sub", ErrDimensionMismatch)
	}
	out := a.Clone()
	for i := range out.data {
		out.data[i] -= b.data[i]
	}
	return out, nil
}

// Identity returns the n×n complex identity.
// Complexity: O(n²) time and memory.
func Identity(n int) (*Dense, error) {
	out, err := NewDense(n, n)
	if err != nil {
		return nil, cmatErrorf("Identity", err)
	}
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out, nil
}

// FrobeniusInfNorm returns max_{i,j} |m[i,j]|, used for orthonormality/
// Hermiticity checks against tolerance (spec §8 properties 3-4).
// Complexity: O(r·c) time, O(1) extra space.
func FrobeniusInfNorm(m *Dense) float64 {
	var mx float64
	for _, v := range m.data {
		if a := cabs(v); a > mx {
			mx = a
		}
	}
	return mx
}

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }

// checkHermitian validates that m is square and Hermitian within hermTol.
// Complexity: O(n²) time, O(1) extra space (upper triangle only).
func checkHermitian(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.r != m.c {
		return ErrNonSquare
	}
	// only the upper triangle needs checking: m[j][i] is pinned by m[i][j]
	for i := 0; i < m.r; i++ {
		for j := i; j < m.c; j++ {
			d := m.At(i, j) - complexConj(m.At(j, i))
			if cabs(d) > hermTol {
				return ErrNotHermitian
			}
		}
	}
	return nil
}

// EigenHermitian computes the eigenvalues (ascending) and an orthonormal
// eigenvector basis of a Hermitian matrix m, via the real-doubling
// embedding described in the package doc comment.
// Stage 1 (Validate): m must be square and Hermitian within hermTol.
// Stage 2 (Embed): build the real symmetric 2n×2n double B.
// Stage 3 (Factorize): run gonum's EigenSym on B.
// Stage 4 (Fold): each eigenvalue of m surfaces twice in B's spectrum;
// keep one member of each adjacent pair and lift (u,v) back to u+iv.
// Complexity: O(n³) time (dominated by EigenSym on the 2n×2n double),
// O(n²) space.
func EigenHermitian(m *Dense) ([]float64, *Dense, error) {
	// Stage 1: validate
	if err := checkHermitian(m); err != nil {
		return nil, nil, cmatErrorf("EigenHermitian", err)
	}
	n := m.r

	// Stage 2: embed m into the real symmetric double B = [[Re,-Im],[Im,Re]]
	bdata := make([]float64, 4*n*n)
	set := func(i, j int, v float64) { bdata[i*2*n+j] = v }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := m.At(i, j)
			set(i, j, real(z))
			set(i, n+j, -imag(z))
			set(n+i, j, imag(z))
			set(n+i, n+j, real(z))
		}
	}
	sym := mat.NewSymDense(2*n, bdata)

	// Stage 3: factorize
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, cmatErrorf("EigenHermitian", ErrEigenFailed)
	}
	allVals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// Stage 4: allVals/vecs columns are sorted ascending by gonum; each
	// true eigenvalue of m appears as an adjacent pair. Keep the
	// even-indexed member of each pair and lift its (u,v) halves.
	type idxVal struct {
		idx int
		val float64
	}
	order := make([]idxVal, 2*n)
	for i, v := range allVals {
		order[i] = idxVal{i, v}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].val < order[j].val })

	eigvals := make([]float64, n)
	eigvecs, err := NewDense(n, n)
	if err != nil {
		return nil, nil, cmatErrorf("EigenHermitian", err)
	}
	for p := 0; p < n; p++ {
		col := order[2*p].idx
		eigvals[p] = order[2*p].val
		for row := 0; row < n; row++ {
			u := vecs.At(row, col)
			v := vecs.At(n+row, col)
			eigvecs.Set(row, p, complex(u, v))
		}
	}
	return eigvals, eigvecs, nil
}

// InverseSqrtHermitian computes O^(-1/2) for a Hermitian positive-definite O
// via O^(-1/2) = V diag(λ^(-1/2)) V†. Returns ErrNonPositiveOverlap if any
// eigenvalue is not strictly positive.
// Stage 1 (Decompose): EigenHermitian(o).
// Stage 2 (Invert-sqrt): build diag(λ^(-1/2)), rejecting non-positive λ.
// Stage 3 (Recompose): V·diag·V†.
// Complexity: O(n³) time (dominated by EigenHermitian), O(n²) space.
func InverseSqrtHermitian(o *Dense) (*Dense, error) {
	// Stage 1: decompose
	vals, vecs, err := EigenHermitian(o)
	if err != nil {
		return nil, cmatErrorf("InverseSqrtHermitian", err)
	}
	n := o.r

	// Stage 2: build diag(lambda^(-1/2))
	diag, err := NewDense(n, n)
	if err != nil {
		return nil, cmatErrorf("InverseSqrtHermitian", err)
	}
	for i, lambda := range vals {
		if lambda <= 0 {
			return nil, cmatErrorf("InverseSqrtHermitian", ErrNonPositiveOverlap)
		}
		diag.Set(i, i, complex(1/math.Sqrt(lambda), 0))
	}

	// Stage 3: recompose V*diag*V^dagger
	vd, err := Mul(vecs, diag)
	if err != nil {
		return nil, cmatErrorf("InverseSqrtHermitian", err)
	}
	return Mul(vd, vecs.ConjTranspose())
}
