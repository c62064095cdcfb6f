// SPDX-License-Identifier: MIT
package pca_test

import (
	"fmt"

	"github.com/katalvlaran/lvpca/pca"
)

// ExampleAnalyze reduces three variables observed five times to two components.
func ExampleAnalyze() {
	data := [][]float64{
		{4, 4.2, 3.9, 4.3, 4.1},
		{2, 2.1, 2, 2.1, 2.2},
		{0.6, 0.59, 0.58, 0.62, 0.63},
	}

	res, err := pca.Analyze(data, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	r, c := res.Projection.Shape()
	fmt.Printf("projection: %d observations × %d components\n", r, c)
	fmt.Printf("first eigenvalue: %.4f\n", res.Values[0])
	fmt.Println("first dominates:", res.Values[0] > 5*res.Values[1])
	// Output:
	// projection: 5 observations × 2 components
	// first eigenvalue: 0.0279
	// first dominates: true
}

// ExampleTransform shows the component-major layout of Transform.
func ExampleTransform() {
	data := [][]float64{
		{1, 2, 3, 4},
		{2, 1, 4, 3},
	}
	out, err := pca.Transform(data, 1, pca.WithMethod(pca.MethodNIPALS))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(out), "component,", len(out[0]), "observations")
	// Output:
	// 1 component, 4 observations
}
