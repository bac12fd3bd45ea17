/*
 * fit.go, part of gonuc.
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

package frame

import (
	"fmt"
	"sync"

	nuc "github.com/rmera/gonuc"
	v3 "github.com/rmera/gonuc/v3"
)

//Ring atoms used in the fit. The pyrimidine ones are the first 6.
var purineRing = []string{"C4", "N3", "C2", "N1", "C6", "C5", "N7", "C8", "N9"}

//RingAtoms returns the names of the atoms fitted for a purine or a pyrimidine,
//with C1' first if c1p is true.
func RingAtoms(purine, c1p bool) []string {
	n := 6
	if purine {
		n = 9
	}
	ret := make([]string, 0, n+1)
	if c1p {
		ret = append(ret, "C1'")
	}
	return append(ret, purineRing[:n]...)
}

//Fit is a fitted reference frame with its diagnostics.
type Fit struct {
	Frame    *Frame
	Residue  int      //index of the residue in the structure
	Matched  []string //names of the atoms used
	Atoms    []int    //indexes in the structure of the atoms used
	RMSD     float64
	Fallback bool //the frame comes from the six-membered ring of a purine
}

func fitNames(S *nuc.Structure, res int, tmpl *nuc.Template, names []string) (*Fit, error) {
	//only the atoms present both in the residue and the template.
	avail := make([]string, 0, len(names))
	for _, v := range names {
		if tmpl.Index(v) >= 0 {
			avail = append(avail, v)
		}
	}
	ind, found := S.ResidueAtoms(res, avail)
	if len(ind) < 3 {
		return nil, Error{fmt.Sprintf("Residue %s: only %d ring atoms found", S.Residue(res), len(ind)), []string{"fitNames"}, false, ErrTooFewAtoms}
	}
	templa, err := tmpl.Sub(found)
	if err != nil {
		return nil, Error{err.Error(), []string{"Sub", "fitNames"}, true, err}
	}
	exp := v3.Zeros(len(ind))
	exp.SomeVecs(S.Coords, ind)
	transformed, rot, trans, err := nuc.RotatorTranslatorToSuper(templa, exp)
	if err != nil {
		return nil, Error{err.Error(), []string{"RotatorTranslatorToSuper", "fitNames"}, false, err}
	}
	rmsd, err := nuc.RMSD(transformed, exp)
	if err != nil {
		return nil, Error{err.Error(), []string{"RMSD", "fitNames"}, true, err}
	}
	return &Fit{Frame: &Frame{Orient: rot, Origin: trans}, Residue: res, Matched: found, Atoms: ind, RMSD: rmsd}, nil
}

//FitResidue fits the template for the base type of residue res to its ring atoms, and returns the
//resulting frame. Purines that don't fit within the cutoff are refitted with their six-membered ring only,
//if the options allow it. The base type of the residue is never changed.
//A failure is not critical: it means the residue can't take part in a pair.
func FitResidue(S *nuc.Structure, res int, T nuc.TemplateProvider, O *Options) (*Fit, error) {
	R := S.Residue(res)
	typ := R.Type()
	if typ == nil {
		return nil, Error{fmt.Sprintf("Residue %s is not a nucleotide", R), []string{"FitResidue"}, false, ErrNotNucleotide}
	}
	tmpl, err := T.Template(typ.Letter)
	if err != nil {
		return nil, Error{err.Error(), []string{"Template", "FitResidue"}, true, err}
	}
	cutoff := O.StrictRMSD()
	if typ.Relaxed {
		cutoff = O.RelaxedRMSD()
	}
	c1p := S.IsRNA() && O.C1PrimeForRNA()
	fit, err := fitNames(S, res, tmpl, RingAtoms(typ.Purine, c1p))
	if err == nil && fit.RMSD <= cutoff {
		return fit, nil
	}
	if typ.Purine && O.Fallback() {
		fit2, err2 := fitNames(S, res, tmpl, RingAtoms(false, c1p))
		if err2 == nil && fit2.RMSD <= cutoff {
			fit2.Fallback = true
			nuc.Logger().Printf("frame: residue %s fitted with its six-membered ring only (RMSD %.3f)", R, fit2.RMSD)
			return fit2, nil
		}
	}
	if err != nil {
		e, _ := err.(Error)
		e.deco = append(e.deco, "FitResidue")
		return nil, e
	}
	return nil, Error{fmt.Sprintf("Residue %s: RMSD %.3f above the cutoff %.3f", R, fit.RMSD, cutoff), []string{"FitResidue"}, false, ErrUnfittable}
}

//FitAll fits every classified residue of S, using O.Cpus() gorutines. The returned slice is
//indexed by residue. Residues that are not nucleotides, or can't be fitted, get a nil Fit, and the
//problem is logged.
func FitAll(S *nuc.Structure, T nuc.TemplateProvider, O *Options) []*Fit {
	fits := make([]*Fit, len(S.Residues))
	jobs := make(chan int, len(S.Residues))
	for _, i := range S.Nucleotides() {
		jobs <- i
	}
	close(jobs)
	cpus := O.Cpus()
	if cpus < 1 {
		cpus = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fit, err := safeFit(S, i, T, O)
				if err != nil {
					nuc.Logger().Printf("frame: %v", err)
					continue
				}
				fits[i] = fit //each worker writes only its own slots
			}
		}()
	}
	wg.Wait()
	return fits
}

//safeFit is FitResidue, but a panic is returned as an error for that residue.
func safeFit(S *nuc.Structure, res int, T nuc.TemplateProvider, O *Options) (fit *Fit, err error) {
	defer func() {
		if r := recover(); r != nil {
			fit = nil
			err = Error{fmt.Sprintf("Residue %d: recovered from panic: %v", res, r), []string{"safeFit"}, true, ErrUnfittable}
		}
	}()
	return FitResidue(S, res, T, O)
}
