package atoms

// Unit system: length Angstrom, time fs, mass amu, energy kcal/mol,
// charge e, temperature K.
const (
	// KB is the Boltzmann constant in kcal/(mol*K).
	KB = 0.0019872041

	// KEConv converts amu*(A/fs)^2 to kcal/mol, excluding the 1/2 factor:
	// KE = KEConv * sum(0.5*m*v^2).
	KEConv = 2390.057361

	// AccConv converts (kcal/(mol*A))/amu to A/fs^2. Equals 1/KEConv.
	AccConv = 0.00041841004

	// VelConv converts sqrt(kcal/(mol*amu)) to A/fs. Sets the thermal
	// velocity scale for Maxwell-Boltzmann draws and the Langevin kick.
	VelConv = 0.0205

	// KCoulomb is the Coulomb constant in kcal*A/(mol*e^2).
	KCoulomb = 332.0636

	// Pressure conversions from the internal kcal/(mol*A^3).
	PressureToAtm = 68568.415
	PressureToBar = 69478.97
)
