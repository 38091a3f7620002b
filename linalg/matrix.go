package linalg

import (
	"fmt"
	"math/cmplx"
)

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// New returns a zero matrix of the given shape.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	return newMatrix(rows, cols), nil
}

func newMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// FromRows copies a rectangular [][]complex128 into a new Matrix.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrBadShape)
	}
	cols := len(rows[0])
	m := newMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadShape, i, len(r), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := newMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Exchange returns the n×n exchange (row-reversal) permutation J.
func Exchange(n int) *Matrix {
	m := newMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+(n-1-i)] = 1
	}
	return m
}

// Outer returns the rank-one matrix x·yᴴ.
func Outer(x, y []complex128) *Matrix {
	m := newMatrix(len(x), len(y))
	for i, xi := range x {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, yj := range y {
			row[j] = xi * cmplx.Conj(yj)
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns element (i, j). It panics when out of range, like slice indexing.
func (m *Matrix) At(i, j int) complex128 {
	m.checkIndex(i, j)
	return m.data[i*m.cols+j]
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v complex128) {
	m.checkIndex(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("linalg: index (%d,%d) out of range for %dx%d", i, j, m.rows, m.cols))
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := newMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// ToRows returns a copy of the matrix as [][]complex128.
func (m *Matrix) ToRows() [][]complex128 {
	out := make([][]complex128, m.rows)
	for i := range out {
		out[i] = append([]complex128(nil), m.data[i*m.cols:(i+1)*m.cols]...)
	}
	return out
}

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []complex128 {
	m.checkIndex(0, j)
	out := make([]complex128, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// Block returns a copy of the rows×cols block starting at (r0, c0).
func (m *Matrix) Block(r0, c0, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || r0 < 0 || c0 < 0 || r0+rows > m.rows || c0+cols > m.cols {
		return nil, fmt.Errorf("%w: block (%d,%d)+%dx%d of %dx%d", ErrDimensionMismatch, r0, c0, rows, cols, m.rows, m.cols)
	}
	out := newMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		src := m.data[(r0+i)*m.cols+c0 : (r0+i)*m.cols+c0+cols]
		copy(out.data[i*cols:(i+1)*cols], src)
	}
	return out, nil
}

// Conj returns the element-wise complex conjugate.
func (m *Matrix) Conj() *Matrix {
	out := newMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = cmplx.Conj(v)
	}
	return out
}

// T returns the transpose.
func (m *Matrix) T() *Matrix {
	out := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// H returns the conjugate (Hermitian) transpose.
func (m *Matrix) H() *Matrix {
	out := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// Scale returns s·m.
func (m *Matrix) Scale(s complex128) *Matrix {
	out := newMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = s * v
	}
	return out
}

// AddDiagonal returns m + s·I for a square m.
func (m *Matrix) AddDiagonal(s complex128) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, m.rows, m.cols)
	}
	out := m.Clone()
	for i := 0; i < m.rows; i++ {
		out.data[i*m.cols+i] += s
	}
	return out, nil
}

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := newMatrix(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns a − b.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: %dx%d - %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := newMatrix(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Mul returns the matrix product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%w: %dx%d * %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := newMatrix(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		dst := out.data[i*b.cols : (i+1)*b.cols]
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			src := b.data[k*b.cols : (k+1)*b.cols]
			for j, bkj := range src {
				dst[j] += aik * bkj
			}
		}
	}
	return out, nil
}

// MulVec returns m·x.
func (m *Matrix) MulVec(x []complex128) ([]complex128, error) {
	if len(x) != m.cols {
		return nil, fmt.Errorf("%w: %dx%d * vector(%d)", ErrDimensionMismatch, m.rows, m.cols, len(x))
	}
	out := make([]complex128, m.rows)
	for i := range out {
		var sum complex128
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}
	return out, nil
}

// QuadraticForm returns xᴴ·m·x.
func (m *Matrix) QuadraticForm(x []complex128) (complex128, error) {
	if m.rows != m.cols || len(x) != m.rows {
		return 0, fmt.Errorf("%w: %dx%d with vector(%d)", ErrDimensionMismatch, m.rows, m.cols, len(x))
	}
	var sum complex128
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var acc complex128
		for j, v := range row {
			acc += v * x[j]
		}
		sum += cmplx.Conj(x[i]) * acc
	}
	return sum, nil
}

// Trace returns the sum of the diagonal.
func (m *Matrix) Trace() complex128 {
	var sum complex128
	n := min(m.rows, m.cols)
	for i := 0; i < n; i++ {
		sum += m.data[i*m.cols+i]
	}
	return sum
}

// IsHermitian reports whether m equals its conjugate transpose within tol
// (absolute, element-wise).
func (m *Matrix) IsHermitian(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := i; j < m.cols; j++ {
			if cmplx.Abs(m.data[i*m.cols+j]-cmplx.Conj(m.data[j*m.cols+i])) > tol {
				return false
			}
		}
	}
	return true
}

// MaxAbsDiff returns max |a_ij − b_ij|.
func MaxAbsDiff(a, b *Matrix) (float64, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	maxDiff := 0.0
	for i := range a.data {
		if d := cmplx.Abs(a.data[i] - b.data[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// hermitianPart returns ½(m + mᴴ).
func hermitianPart(m *Matrix) *Matrix {
	n := m.rows
	out := newMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = 0.5 * (m.data[i*n+j] + cmplx.Conj(m.data[j*n+i]))
		}
	}
	return out
}
