// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Stats counts work performed by the kernels on behalf of one computation.
// A caller allocates a Stats, threads it through MulWithStats (or the
// WithStats options of ops and pca) and reads the totals afterwards.
//
// A nil *Stats is valid and records nothing. A Stats value must not be
// shared between goroutines without external synchronization; give every
// concurrent computation its own.
type Stats struct {
	// Products is the number of matrix-matrix products performed.
	Products int64
	// Multiplications is the number of scalar multiplications performed by
	// those products (zero entries of the left operand are skipped and not counted).
	Multiplications int64
}

// addProduct records one product with n scalar multiplications.
func (s *Stats) addProduct(n int64) {
	if s == nil {
		return
	}
	s.Products++
	s.Multiplications += n
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	if s == nil {
		return
	}
	*s = Stats{}
}

// String implements fmt.Stringer.
func (s *Stats) String() string {
	if s == nil {
		return "stats: <nil>"
	}

	return fmt.Sprintf("%d products, %d multiplications", s.Products, s.Multiplications)
}
