// Package elements is the periodic-table lookup used by the force models
// and the XYZ reader. Data is keyed by atomic number Z.
package elements

import "strings"

type element struct {
	symbol string
	mass   float64 // amu
}

var table = map[int]element{
	1:  {"H", 1.008},
	2:  {"He", 4.0026},
	3:  {"Li", 6.94},
	4:  {"Be", 9.0122},
	5:  {"B", 10.81},
	6:  {"C", 12.011},
	7:  {"N", 14.007},
	8:  {"O", 15.999},
	9:  {"F", 18.998},
	10: {"Ne", 20.180},
	11: {"Na", 22.990},
	12: {"Mg", 24.305},
	13: {"Al", 26.982},
	14: {"Si", 28.085},
	15: {"P", 30.974},
	16: {"S", 32.06},
	17: {"Cl", 35.45},
	18: {"Ar", 39.948},
	19: {"K", 39.098},
	20: {"Ca", 40.078},
	26: {"Fe", 55.845},
	29: {"Cu", 63.546},
	30: {"Zn", 65.38},
	35: {"Br", 79.904},
	53: {"I", 126.90},
	54: {"Xe", 131.29},
	55: {"Cs", 132.91},
	84: {"Po", 209.0},
}

var bySymbol = func() map[string]int {
	m := make(map[string]int, len(table))
	for z, e := range table {
		m[strings.ToLower(e.symbol)] = z
	}
	return m
}()

// Symbol returns the element symbol for Z, or "X" when unknown.
func Symbol(z int) string {
	if e, ok := table[z]; ok {
		return e.symbol
	}
	return "X"
}

// AtomicNumber resolves a case-insensitive element symbol.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	return z, ok
}

// Mass returns the atomic mass in amu, falling back to carbon for
// undefined elements.
func Mass(z int) float64 {
	if e, ok := table[z]; ok {
		return e.mass
	}
	return table[6].mass
}

// LJ holds per-element Lennard-Jones parameters: sigma in Angstrom,
// epsilon in kcal/mol.
type LJ struct {
	Sigma   float64
	Epsilon float64
}

// Table maps atomic number to LJ parameters.
type Table map[int]LJ

// ljCarbon is the documented fallback for elements without UFF parameters.
var ljCarbon = LJ{Sigma: 3.851, Epsilon: 0.105}

// UFF returns the UFF Lennard-Jones table (Rappe et al. 1992).
func UFF() Table {
	return Table{
		1:  {2.886, 0.044},
		6:  {3.851, 0.105},
		7:  {3.660, 0.069},
		8:  {3.500, 0.060},
		9:  {3.364, 0.050},
		11: {3.328, 0.030},
		12: {3.021, 0.111},
		13: {4.499, 0.505},
		14: {4.295, 0.402},
		15: {4.147, 0.305},
		16: {4.035, 0.274},
		17: {3.947, 0.227},
		18: {3.400, 0.238},
		20: {3.399, 0.238},
		26: {2.912, 0.013},
		29: {3.495, 0.005},
		30: {2.763, 0.124},
		54: {4.404, 0.332},
		55: {4.517, 0.045},
		84: {4.195, 0.325},
	}
}

// Lookup returns the LJ parameters for Z with the carbon-like fallback.
func (t Table) Lookup(z int) LJ {
	if p, ok := t[z]; ok {
		return p
	}
	return ljCarbon
}
