// Package xyz reads and writes atomic configurations in the plain XYZ
// format: a count line, a free-form comment line, then one record per
// atom. Records carry at least a symbol and Cartesian coordinates in
// angstroms; optional trailing columns extend them with a charge and a
// velocity. The comment line may embed a bond list for bonded systems.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/elements"
)

// Record layouts accepted per atom line, by field count:
//
//	4: symbol x y z
//	5: symbol x y z q
//	7: symbol x y z vx vy vz
//	8: symbol x y z q vx vy vz
//
// Coordinates are angstroms, charges elementary charges, velocities
// angstroms per femtosecond.

// Read parses a single frame from r.
func Read(r io.Reader) (*atoms.State, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)
	s, err := readFrame(sc)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("xyz: empty input")
	}
	return s, nil
}

// ReadFile parses the first frame of the file at path.
func ReadFile(path string) (*atoms.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xyz: %w", err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("xyz: %s: %w", path, err)
	}
	return s, nil
}

// ReadFrames parses every concatenated frame in r, as written by
// trajectory output.
func ReadFrames(r io.Reader) ([]*atoms.State, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)
	var frames []*atoms.State
	for {
		s, err := readFrame(sc)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		if s == nil {
			break
		}
		frames = append(frames, s)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("xyz: empty input")
	}
	return frames, nil
}

// readFrame returns (nil, nil) at clean EOF.
func readFrame(sc *bufio.Scanner) (*atoms.State, error) {
	line, ok := nextLine(sc)
	if !ok {
		return nil, sc.Err()
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("bad atom count %q", strings.TrimSpace(line))
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("missing comment line")
	}
	comment := sc.Text()

	s := atoms.New(n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("truncated frame: %d of %d atoms", i, n)
		}
		if err := parseAtom(sc.Text(), s, i); err != nil {
			return nil, fmt.Errorf("atom %d: %w", i, err)
		}
	}

	bonds, err := ParseBonds(comment)
	if err != nil {
		return nil, err
	}
	for _, b := range bonds {
		if b.I < 0 || b.J < 0 || b.I >= n || b.J >= n {
			return nil, fmt.Errorf("bond %d-%d out of range for %d atoms", b.I, b.J, n)
		}
	}
	s.Bonds = bonds
	return s, nil
}

// nextLine skips blank lines between frames.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return sc.Text(), true
		}
	}
	return "", false
}

func parseAtom(line string, s *atoms.State, i int) error {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return fmt.Errorf("expected at least 4 fields, got %d", len(fields))
	}

	z, ok := elements.AtomicNumber(fields[0])
	if !ok {
		return fmt.Errorf("unknown element %q", fields[0])
	}
	s.Type[i] = z
	s.M[i] = elements.Mass(z)

	vals := make([]float64, len(fields)-1)
	for k, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("field %q: %w", f, err)
		}
		vals[k] = v
	}

	s.X[i].X, s.X[i].Y, s.X[i].Z = vals[0], vals[1], vals[2]
	switch len(vals) {
	case 3:
	case 4:
		s.Q[i] = vals[3]
	case 6:
		s.V[i].X, s.V[i].Y, s.V[i].Z = vals[3], vals[4], vals[5]
	case 7:
		s.Q[i] = vals[3]
		s.V[i].X, s.V[i].Y, s.V[i].Z = vals[4], vals[5], vals[6]
	default:
		return fmt.Errorf("unsupported field count %d", len(fields))
	}
	return nil
}

// ParseBonds extracts a "bonds=i-j,k-l" token from an XYZ comment line.
// A comment without the token yields no bonds.
func ParseBonds(comment string) ([]atoms.Edge, error) {
	var spec string
	for _, tok := range strings.Fields(comment) {
		if strings.HasPrefix(tok, "bonds=") {
			spec = strings.TrimPrefix(tok, "bonds=")
			break
		}
	}
	if spec == "" {
		return nil, nil
	}

	var bonds []atoms.Edge
	for _, pair := range strings.Split(spec, ",") {
		lo, hi, found := strings.Cut(pair, "-")
		if !found {
			return nil, fmt.Errorf("bad bond pair %q", pair)
		}
		i, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("bad bond index %q", lo)
		}
		j, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("bad bond index %q", hi)
		}
		bonds = append(bonds, atoms.Edge{I: i, J: j})
	}
	return bonds, nil
}

// Options control the optional columns and comment content of Write.
type Options struct {
	Comment   string
	Charges   bool // emit the charge column
	Velocity  bool // emit vx vy vz columns
	Bonds     bool // embed bonds=... in the comment line
	Energies  bool // embed energy terms in the comment line
	Precision int  // coordinate decimals, default 6
}

// Write emits s as one XYZ frame.
func Write(w io.Writer, s *atoms.State, opt Options) error {
	if !s.IsValid() {
		return atoms.ErrInvalidState
	}
	prec := opt.Precision
	if prec <= 0 {
		prec = 6
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", s.N)
	bw.WriteString(commentLine(s, opt))
	bw.WriteByte('\n')

	for i := 0; i < s.N; i++ {
		fmt.Fprintf(bw, "%s %.*f %.*f %.*f", elements.Symbol(s.Type[i]),
			prec, s.X[i].X, prec, s.X[i].Y, prec, s.X[i].Z)
		if opt.Charges {
			fmt.Fprintf(bw, " %.*f", prec, s.Q[i])
		}
		if opt.Velocity {
			fmt.Fprintf(bw, " %.*f %.*f %.*f", prec, s.V[i].X, prec, s.V[i].Y, prec, s.V[i].Z)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func commentLine(s *atoms.State, opt Options) string {
	var parts []string
	if opt.Comment != "" {
		parts = append(parts, opt.Comment)
	}
	if opt.Energies {
		parts = append(parts, fmt.Sprintf("E=%.6f Ubond=%.6f Uangle=%.6f Utors=%.6f UvdW=%.6f UCoul=%.6f",
			s.E.Total(), s.E.Bond, s.E.Angle, s.E.Torsion, s.E.VdW, s.E.Coulomb))
	}
	if opt.Bonds && len(s.Bonds) > 0 {
		pairs := make([]string, len(s.Bonds))
		for k, b := range s.Bonds {
			pairs[k] = fmt.Sprintf("%d-%d", b.I, b.J)
		}
		parts = append(parts, "bonds="+strings.Join(pairs, ","))
	}
	return strings.Join(parts, " ")
}

// WriteFile writes s as a single-frame XYZ file at path.
func WriteFile(path string, s *atoms.State, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("xyz: %w", err)
	}
	if err := Write(f, s, opt); err != nil {
		f.Close()
		return fmt.Errorf("xyz: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("xyz: %s: %w", path, err)
	}
	return nil
}
