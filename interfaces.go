/*
 * interfaces.go, part of gonuc.
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
	"io"
	"log"
)

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// TemplateProvider gives the standard base for a one-letter base code.
// Implementations must be safe for concurrent use, and the templates they return are never modified.
type TemplateProvider interface {
	Template(letter byte) (*Template, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it just returns the current value.
	Critical() bool
}

// CError is the concrete error type of the nuc package.
type CError struct {
	msg      string
	deco     []string
	critical bool
}

func (err CError) Error() string { return err.msg }

// Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored.
func (err CError) Critical() bool { return err.critical }

// errDecorate asserts that the error implements Error and decorates it with the caller's name.
// Errors from outside the library are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrAtomOutOfRange    = PanicMsg("goNuc: Atom index out of range")
	ErrResidueOutOfRange = PanicMsg("goNuc: Residue index out of range")
)

//logging

var logger = log.New(io.Discard, "gonuc: ", 0)

// SetLogger sets the logger used by all goNuc packages for non-fatal events,
// such as residues that can't be fitted. By default nothing is logged.
// A nil logger discards everything again.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// Logger returns the logger set with SetLogger.
func Logger() *log.Logger {
	return logger
}
