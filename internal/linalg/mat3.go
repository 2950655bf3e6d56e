package linalg

import "math"

// Mat3 is a 3x3 matrix stored row-major.
type Mat3 [9]float64

func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func (m Mat3) At(i, j int) float64      { return m[i*3+j] }
func (m *Mat3) Set(i, j int, v float64) { m[i*3+j] = v }

func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[j], m[3+j], m[6+j]}
}

func (m *Mat3) SetCol(j int, v Vec3) {
	m[j] = v.X
	m[3+j] = v.Y
	m[6+j] = v.Z
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*o[j] + m[i*3+1]*o[3+j] + m[i*3+2]*o[6+j]
		}
	}
	return r
}

func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func (m Mat3) FrobNorm() float64 {
	s := 0.0
	for _, v := range m {
		s += v * v
	}
	return math.Sqrt(s)
}

func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

// AxisAngle builds the rotation of angle theta about the given axis
// (Rodrigues formula). A near-zero axis yields the identity.
func AxisAngle(axis Vec3, theta float64) Mat3 {
	n := axis.Norm()
	if n < 1e-12 {
		return Identity()
	}
	a := axis.Scale(1 / n)
	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c
	return Mat3{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c,
	}
}
