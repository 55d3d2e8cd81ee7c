package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// input in degrees, rotation applied around z, then x, then y
func EulerToQuat(deg mgl32.Vec3) mgl32.Quat {
	r := DegreeToRadiansV3(deg)
	qx := mgl32.QuatRotate(r[0], mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(r[1], mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(r[2], mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatToEuler is the inverse of EulerToQuat, angles are wrapped into [0, 360)
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()
	// m = Ry * Rx * Rz, so m[1][2] = -sin(x)
	sx := float64(-m.At(1, 2))
	var x, y, z float64
	if math.Abs(sx) < 0.99999 {
		x = math.Asin(sx)
		y = math.Atan2(float64(m.At(0, 2)), float64(m.At(2, 2)))
		z = math.Atan2(float64(m.At(1, 0)), float64(m.At(1, 1)))
	} else {
		// gimbal lock, z is folded into y
		x = math.Copysign(math.Pi/2, sx)
		y = math.Atan2(float64(-m.At(2, 0)), float64(m.At(0, 0)))
	}
	deg := RadiansToDegreeV3(mgl32.Vec3{float32(x), float32(y), float32(z)})
	return mgl32.Vec3{wrapDegrees(deg[0]), wrapDegrees(deg[1]), wrapDegrees(deg[2])}
}

func wrapDegrees(a float32) float32 {
	w := float32(math.Mod(float64(a), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 || w == 0 {
		return 0
	}
	return w
}

func DegreeToRadiansV3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2])}
}

func RadiansToDegreeV3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.RadToDeg(v[0]), mgl32.RadToDeg(v[1]), mgl32.RadToDeg(v[2])}
}

// FormatFloat prints the shortest text that reads back as the same float32
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func FormatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", FormatFloat(v[0]), FormatFloat(v[1]), FormatFloat(v[2]))
}
