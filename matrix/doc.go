// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float32 matrices networks are built from.
//
// # Overview
//
// Matrices are row-major and either own their buffer or are views created
// with Wrap over caller memory. This package provides:
//   - Elementwise ops (Add, Sub, Hadamard, Scale) and their in-place forms
//   - Matrix product (Mul) with a fixed summation order
//   - Transpose, Apply, ArgMax
//   - Arena: tracks temporaries so one Release frees them all
//   - A whitespace-delimited text codec
//
// # Basic Usage
//
//	import "github.com/born-ml/mlp/matrix"
//
//	func main() {
//	    a := matrix.FromSlice(2, 2, []float32{1, 2, 3, 4})
//	    b := matrix.Identity(2)
//
//	    c := matrix.Mul(a, b)
//	    defer c.Release()
//
//	    matrix.Print(os.Stdout, c)
//	}
//
// # Ownership
//
// Every operation returning a *Matrix allocates a new owned matrix. Release
// drops an owned buffer; releasing a view never touches the caller's memory.
// Using a released matrix panics.
package matrix
