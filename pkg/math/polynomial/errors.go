package polynomial

import "errors"

// Sentinel errors for the polynomial engine (spec §4.C). None of these
// ever surface from a panic; every fallible path returns one of these
// instead.
var (
	ErrEmptyInput        = errors.New("polynomial: empty input")
	ErrDuplicateAbscissa = errors.New("polynomial: duplicate abscissa")
	ErrZeroAbscissa      = errors.New("polynomial: zero abscissa in denominator")
	ErrDegreeOverflow    = errors.New("polynomial: degree overflow")
)
