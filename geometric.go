/*
 * geometric.go, part of gonuc.
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

package nuc

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gonuc/v3"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Angle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//RotatorTranslatorToSuper superimposes the set of cartesian coordinates given as the rows of the matrix test on the ones of the rows
//of the matrix templa, in the least squares sense. Returns the transformed matrix, the rotation matrix and the translation
//row vector, so that transformed = test*rotation + translation. The rotation is always proper (determinant +1):
//if the best orthogonal transformation is a reflection, the closest rotation is returned instead.
//The rows of the rotation are the images of the x, y and z axes.
func RotatorTranslatorToSuper(test, templa *v3.Matrix) (*v3.Matrix, *v3.Matrix, *v3.Matrix, error) {
	tmr := templa.NVecs()
	tsr := test.NVecs()
	if tmr != tsr || tmr < 3 {
		return nil, nil, nil, CError{fmt.Sprintf("Ill-formed matrices: %d and %d vectors", tsr, tmr), []string{"RotatorTranslatorToSuper"}, true}
	}
	testc := v3.Zeros(1)
	testc.Centroid(test)
	templac := v3.Zeros(1)
	templac.Centroid(templa)
	ctest := v3.Zeros(tsr)
	ctest.SubVec(test, testc)
	ctempla := v3.Zeros(tmr)
	ctempla.SubVec(templa, templac)
	//cross-covariance between the centered sets
	var H mat.Dense
	H.Mul(ctest.T(), ctempla)
	var svd mat.SVD
	if ok := svd.Factorize(&H, mat.SVDFull); !ok {
		return nil, nil, nil, CError{"SVD factorization failed", []string{"RotatorTranslatorToSuper"}, true}
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	d := 1.0
	if v3.Det(&U)*v3.Det(&V) < 0 {
		d = -1.0
	}
	D := mat.NewDiagDense(3, []float64{1, 1, d})
	var UD mat.Dense
	UD.Mul(&U, D)
	rotation := v3.Zeros(3)
	rotation.Mul(&UD, V.T())
	translation := v3.Zeros(1)
	translation.Mul(testc, rotation)
	translation.Dense.Sub(templac.Dense, translation.Dense)
	transformed := v3.Zeros(tsr)
	transformed.Mul(test, rotation)
	transformed.AddVec(transformed, translation)
	return transformed, rotation, translation, nil
}

//Super superimposes test onto templa and returns the superimposed test coordinates and the RMSD
//of the superposition.
func Super(test, templa *v3.Matrix) (*v3.Matrix, float64, error) {
	transformed, _, _, err := RotatorTranslatorToSuper(test, templa)
	if err != nil {
		return nil, 0, errDecorate(err, "Super")
	}
	rmsd, err := RMSD(transformed, templa)
	return transformed, rmsd, errDecorate(err, "Super")
}

//RMSD returns the RSMD (root of the mean square deviation) for the sets of cartesian
//coordinates in test and template.
func RMSD(test, template *v3.Matrix) (float64, error) {
	tmr := template.NVecs()
	tsr := test.NVecs()
	if tmr != tsr || tmr == 0 {
		return 0, CError{"Ill formed matrices for RMSD calculation", []string{"RMSD"}, true}
	}
	var sq float64
	for i := 0; i < tmr; i++ {
		d := test.VecView(i).Distance(template.VecView(i))
		sq += d * d
	}
	return math.Sqrt(sq / float64(tmr)), nil
}

//RotatorAroundAxis returns the matrix that rotates row vectors by angle radians
//around axis, counterclockwise when looking from the tip of axis to the origin.
//A row vector v is rotated as v*R, and so are the rows of an orientation matrix.
//Panics if axis is a zero vector.
func RotatorAroundAxis(axis *v3.Matrix, angle float64) *v3.Matrix {
	k := v3.Zeros(1)
	k.Unit(axis)
	x, y, z := k.At(0, 0), k.At(0, 1), k.At(0, 2)
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	//This is the transpose of the usual (column-vector) Rodrigues matrix.
	R, _ := v3.NewMatrix([]float64{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	})
	return R
}

//Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. The result is in radians, in [-pi, pi].
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	b1 := v3.Zeros(1)
	b1.Dense.Sub(b.Dense, a.Dense)
	b2 := v3.Zeros(1)
	b2.Dense.Sub(c.Dense, b.Dense)
	b3 := v3.Zeros(1)
	b3.Dense.Sub(d.Dense, c.Dense)
	n1 := v3.Zeros(1)
	n1.Cross(b1, b2)
	n2 := v3.Zeros(1)
	n2.Cross(b2, b3)
	m := v3.Zeros(1)
	m.Cross(n1, n2)
	y := m.Dot(b2) / b2.Norm()
	x := n1.Dot(n2)
	return math.Atan2(y, x)
}
