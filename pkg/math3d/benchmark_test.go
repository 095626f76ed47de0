package math3d

import (
	"testing"
)

func BenchmarkSolve3(b *testing.B) {
	d := V3(35, 0, -20)
	s1 := V3(0, 20, 0)
	s2 := V3(-11.09, 0, -16.64)
	o := V3(12, 3, -4)

	for b.Loop() {
		_, _, _, _ = Solve3(d, s1, s2, o)
	}
}

func BenchmarkDet3(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)
	v3 := V3(7, 8, 10)

	for b.Loop() {
		_ = Det3(v1, v2, v3)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := TRS(V3(1, 2, 3), V3(0.3, 0.5, 0.7), V3(2, 2, 2))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkRotateEuler(b *testing.B) {
	r := V3(0.3, 0.5, 0.7)

	for b.Loop() {
		_ = RotateEuler(r)
	}
}

func BenchmarkVec3Distance(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Distance(v2)
	}
}
