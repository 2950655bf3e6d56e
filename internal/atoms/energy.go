package atoms

// EnergyTerms is the additive potential-energy ledger filled by force
// models. All values are kcal/mol.
type EnergyTerms struct {
	Bond     float64
	Angle    float64
	Torsion  float64
	VdW      float64
	Coulomb  float64
	External float64
}

func (e EnergyTerms) Total() float64 {
	return e.Bond + e.Angle + e.Torsion + e.VdW + e.Coulomb + e.External
}

// Potential is an alias for Total; every ledger term is potential energy.
func (e EnergyTerms) Potential() float64 { return e.Total() }

func (e *EnergyTerms) Clear() { *e = EnergyTerms{} }
