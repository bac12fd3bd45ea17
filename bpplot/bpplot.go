/*
 * bpplot.go, part of gonuc.
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

//Package bpplot plots the step and helical parameters along a list of base-pair steps.
package bpplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/gonuc/selection"
	"github.com/rmera/gonuc/steps"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Names of the parameters, in the order of steps.Steps.Slice and steps.Helical.Slice
var (
	StepNames    = []string{"Shift", "Slide", "Rise", "Tilt", "Roll", "Twist"}
	HelicalNames = []string{"X-disp", "Y-disp", "h-Rise", "Inclination", "Tip", "h-Twist"}
)

//Groups of parameters that share units, and so a plot.
var (
	Translations = []int{0, 1, 2}
	Rotations    = []int{3, 4, 5}
)

//Labels returns a label for each step, made of the letters of both pairs.
func Labels(st []*selection.Step) []string {
	ret := make([]string, len(st))
	for i, s := range st {
		ret[i] = s.First.Letters + "/" + s.Second.Letters
	}
	return ret
}

//values returns the value of parameter k for each step, and whether it is defined.
func values(st []*selection.Step, helical bool, k int) ([]float64, []bool) {
	vals := make([]float64, len(st))
	def := make([]bool, len(st))
	for i, s := range st {
		if helical {
			if s.Helical == nil {
				continue
			}
			vals[i] = s.Helical.Slice()[k]
			def[i] = s.Helical.Defined(steps.Undefined(1 << uint(k)))
			continue
		}
		vals[i] = s.Steps.Slice()[k]
		def[i] = !math.IsNaN(vals[i])
	}
	return vals, def
}

//Parameters returns a plot of the parameters with the indexes in which (see Translations and Rotations) along
//the steps. If helical is true the helical parameters are plotted, otherwise the step parameters. Undefined
//values are left out.
func Parameters(st []*selection.Step, helical bool, which []int, title string) (*plot.Plot, error) {
	if len(st) == 0 {
		return nil, Error{"No steps to plot", []string{"Parameters"}, true}
	}
	names := StepNames
	if helical {
		names = HelicalNames
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "A"
	if which[0] > 2 {
		p.Y.Label.Text = "Degrees"
	}
	p.Add(plotter.NewGrid())
	p.NominalX(Labels(st)...)
	for n, k := range which {
		vals, def := values(st, helical, k)
		pts := make(plotter.XYs, 0, len(vals))
		for i, v := range vals {
			if def[i] {
				pts = append(pts, plotter.XY{X: float64(i), Y: v})
			}
		}
		if len(pts) == 0 {
			continue
		}
		r, g, b := colors(n, len(which))
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, Error{err.Error(), []string{"plotter.NewLine", "Parameters"}, true}
		}
		l.LineStyle.Color = c
		l.LineStyle.Width = vg.Points(1.5)
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, Error{err.Error(), []string{"plotter.NewScatter", "Parameters"}, true}
		}
		s.GlyphStyle.Color = c
		s.GlyphStyle.Shape = getShape(n)
		p.Add(l, s)
		p.Legend.Add(names[k], l, s)
	}
	p.Legend.Top = true
	return p, nil
}

//SaveAll writes four PNG plots: prefix_steps_trans.png, prefix_steps_rot.png, prefix_helical_trans.png
//and prefix_helical_rot.png. It returns the names of the files written.
func SaveAll(st []*selection.Step, prefix string) ([]string, error) {
	var ret []string
	for _, helical := range []bool{false, true} {
		kind := "steps"
		if helical {
			kind = "helical"
		}
		for _, g := range []struct {
			name  string
			which []int
		}{{"trans", Translations}, {"rot", Rotations}} {
			p, err := Parameters(st, helical, g.which, fmt.Sprintf("%s (%s)", kind, g.name))
			if err != nil {
				return ret, errDecorate(err, "SaveAll")
			}
			filename := fmt.Sprintf("%s_%s_%s.png", prefix, kind, g.name)
			w := vg.Length(math.Max(5, 0.6*float64(len(st)))) * vg.Inch
			if err := p.Save(w, 5*vg.Inch, filename); err != nil {
				return ret, Error{err.Error(), []string{"Save", "SaveAll"}, true}
			}
			ret = append(ret, filename)
		}
	}
	return ret, nil
}

func getShape(i int) draw.GlyphDrawer {
	switch i % 4 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.TriangleGlyph{}
	case 2:
		return draw.SquareGlyph{}
	}
	return draw.CrossGlyph{}
}

//iHVS2RGB turns a hue, value, saturation color into RGB.
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * maxcolor), uint8(g * maxcolor), uint8(b * maxcolor)
}

//colors returns the key-th of n colors spread over the hue circle, skipping yellow.
func colors(key, n int) (r, g, b uint8) {
	norm := 260.0 / float64(n)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return iHVS2RGB(h, 0.9, 1.0)
}

//Errors

//Error is the error type of the bpplot package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.deco = append(err2.deco, caller)
		return err2
	}
	return err
}
