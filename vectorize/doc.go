// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vectorize rewrites scalar Go code into code over fixed-width lane
// vectors.
//
// Given a lane count and a parsed function or expression, Rewrite produces a
// copy in which every value is a vector of that many lanes:
//
//	func(x float32, y uint32) float32 {
//		if y == 1 {
//			return x
//		} else {
//			return x + float32(y)
//		}
//	}
//
// becomes, for a width of 4,
//
//	func(x simd.Vec[[4]float32], y simd.Vec[[4]uint32]) simd.Vec[[4]float32] {
//		return simd.Select(simd.Eq(y, simd.Splat(4, 1)), x, x+simd.Cast[float32](4, y))
//	}
//
// Literals are broadcast with Splat, comparisons become lane-wise
// comparators, if/else becomes Select, conversions become Cast and every
// type T in a type position becomes Vec[[width]T]. The names come from a
// Runtime; the vector package itself is not part of this module.
//
// Two call forms opt code out of the rewrite:
//
//	scalar(e)    // Splat(width, e), e is left as written
//	verbatim(e)  // e, left as written
//
// An if without an else cannot be selected lane-wise. Such errors do not
// stop the walk; Rewrite returns all of them as an ErrorList.
package vectorize
