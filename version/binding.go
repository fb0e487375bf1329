package version

import (
	"go_rga/core"
)

// Binding maps the half-open interval of library versions starting at
// Current to the minimum counterpart (driver or header) version it needs.
type Binding struct {
	Current Version
	Minimum Version
}

// Table is sorted ascending on both axes.
type Table []Binding

// DriverTable binds library versions to the minimum kernel driver version.
var DriverTable = Table{
	{Version{0, 0, 0}, Version{0, 0, 0}},
	{Version{1, 0, 3}, Version{0, 0, 0}},
	{Version{1, 6, 0}, Version{1, 1, 5}},
	{Version{1, 7, 2}, Version{1, 2, 0}},
	{Version{1, 7, 3}, Version{1, 2, 4}},
}

// HeaderTable binds library versions to the minimum API header version.
var HeaderTable = Table{
	{Version{0, 0, 0}, Version{0, 0, 0}},
	{Version{1, 0, 3}, Version{1, 0, 3}},
	{Version{1, 4, 0}, Version{1, 4, 0}},
}

// Range classifies a counterpart version against a binding row.
type Range int

const (
	Below Range = iota - 1
	Within
	Above
)

func (r Range) String() string {
	switch r {
	case Below:
		return "below"
	case Within:
		return "within"
	case Above:
		return "above"
	}
	return "unknown"
}

// NotFound is returned as the index when no interval contains the version.
const NotFound = -1

// ResolveBindingIndex finds the row whose [Current, next.Current) interval
// contains v.
func ResolveBindingIndex(v Version, table Table) (int, error) {
	return resolve(v, table, func(b Binding) Version { return b.Current })
}

// ResolveMinimumIndex is ResolveBindingIndex on the Minimum axis.
func ResolveMinimumIndex(v Version, table Table) (int, error) {
	return resolve(v, table, func(b Binding) Version { return b.Minimum })
}

func resolve(v Version, table Table, axis func(Binding) Version) (int, error) {
	for i := len(table) - 1; i >= 0; i-- {
		if Compare(v, axis(table[i])) < 0 {
			continue
		}
		if i == len(table)-1 || Compare(axis(table[i+1]), v) > 0 {
			return i, nil
		}
	}
	return NotFound, core.ErrVersion("version %s is below the first binding entry", v)
}

// CheckMinimumRange classifies min against table[index].Minimum and, when
// index is not the last row, table[index+1].Minimum.
func CheckMinimumRange(min Version, table Table, index int) Range {
	if Compare(min, table[index].Minimum) < 0 {
		return Below
	}
	if index == len(table)-1 || Compare(min, table[index+1].Minimum) < 0 {
		return Within
	}
	return Above
}

// Result carries the classification and the version the caller should
// move to. For Below it is the recommended counterpart; for Above it is
// the least library version bound to the counterpart.
type Result struct {
	Range Range
	Least Version
}

func check(library, counterpart Version, table Table, what string) (Result, error) {
	idx, err := ResolveBindingIndex(library, table)
	if err != nil {
		return Result{}, core.ErrVersion("failed to get the version binding table of librga, librga: %s, %s: %s",
			library, what, counterpart)
	}

	switch r := CheckMinimumRange(counterpart, table, idx); r {
	case Below:
		return Result{Range: Below, Least: table[idx].Minimum}, nil
	case Above:
		least, err := ResolveMinimumIndex(counterpart, table)
		if err != nil {
			return Result{Range: Above}, core.ErrVersion("failed to get the version binding table of %s, librga: %s, %s: %s",
				what, library, what, counterpart)
		}
		return Result{Range: Above, Least: table[least].Current}, nil
	default:
		return Result{Range: Within}, nil
	}
}

// CheckDriver classifies a kernel driver version for this library. Below is
// advisory and returns no error; Above and lookup failures are fatal.
func CheckDriver(library, driver Version) (Result, error) {
	res, err := check(library, driver, DriverTable, "driver")
	if err != nil {
		return res, err
	}
	if res.Range == Above {
		return res, core.ErrVersion("librga must be updated to version %s at least, current version: librga %s, driver %s",
			res.Least, library, driver)
	}
	return res, nil
}

// CheckHeader classifies the API header version. Anything other than Within
// is an error; the caller decides whether to continue.
func CheckHeader(library, header Version) (Result, error) {
	res, err := check(library, header, HeaderTable, "header")
	if err != nil {
		return res, err
	}
	switch res.Range {
	case Below:
		return res, core.ErrVersion("header version %s is too old for librga %s, update the header to %s or above",
			header, library, res.Least)
	case Above:
		return res, core.ErrVersion("header version %s is newer than librga %s, librga must be updated to %s at least",
			header, library, res.Least)
	}
	return res, nil
}
