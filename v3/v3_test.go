/*
 * v3_test.go, part of gonuc.
 *
 * Copyright 2026 The goNuc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	err = B.SomeVecsSafe(A, cind)
	if err != nil {
		Te.Fatal(err)
	}
	if B.At(1, 0) != 10 || B.At(2, 2) != 18 {
		Te.Errorf("wrong vectors selected: %v", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Errorf("SetVecs didn't copy the changes back: %v", A)
	}
	C := Zeros(2)
	if err := C.SomeVecsSafe(A, cind); err == nil {
		Te.Error("expected an error from a mismatched SomeVecsSafe")
	}
}

func TestViews(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	v := A.VecView(1)
	v.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("changes in the view are not reflected in the matrix: %v", A)
	}
	w := A.View(1, 2)
	if w.NVecs() != 2 || w.At(1, 2) != 9 {
		Te.Errorf("bad view %v", w)
	}
}

func TestVecOps(Te *testing.T) {
	x := Vec(1, 0, 0)
	y := Vec(0, 1, 0)
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	if x.Dot(y) != 0 {
		Te.Errorf("x and y should be orthogonal")
	}
	u := Vec(3, 4, 0)
	if u.Norm() != 5 {
		Te.Errorf("norm of (3,4,0) is 5, got %f", u.Norm())
	}
	u.Unit(u)
	if math.Abs(u.Norm()-1) > 1e-12 {
		Te.Errorf("Unit didn't normalize: %v", u)
	}
	if d := x.Distance(y); math.Abs(d-math.Sqrt2) > 1e-12 {
		Te.Errorf("wrong distance %f", d)
	}
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 2, 2})
	c := Zeros(1)
	c.Centroid(A)
	if c.At(0, 0) != 1 || c.At(0, 1) != 1 || c.At(0, 2) != 1 {
		Te.Errorf("bad centroid %v", c)
	}
	B := Zeros(2)
	B.SubVec(A, c)
	B.AddVec(B, c)
	if !mat.Equal(A, B) {
		Te.Errorf("SubVec/AddVec not inverses: %v %v", A, B)
	}
}

func TestMulAliased(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 1, 0, -1, 0, 0, 0, 0, 1})
	B := Eye()
	B.Mul(B, A)
	if !mat.EqualApprox(A, B, 1e-12) {
		Te.Errorf("I*A should be A, got %v", B)
	}
	if d := Det(B); math.Abs(d-1) > 1e-12 {
		Te.Errorf("a rotation has det 1, got %f", d)
	}
}
