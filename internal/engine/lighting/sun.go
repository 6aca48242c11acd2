// Package lighting describes the scene's directional light.
package lighting

import "math"

// Sun is a directional light given by compass angles in degrees.
// Azimuth rotates around the Y axis starting at +Z; elevation is measured
// up from the horizon.
type Sun struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"` // light level of faces turned away, 0..1
}

// DefaultSun returns a light from the front left, high enough that box
// tops, fronts and sides get distinct shades.
func DefaultSun() Sun {
	return Sun{Azimuth: 30, Elevation: 60, Ambient: 0.55}
}

// ToSun returns the normalized vector pointing from the scene towards the light.
func (s Sun) ToSun() [3]float32 {
	az := float64(s.Azimuth) * math.Pi / 180
	el := float64(s.Elevation) * math.Pi / 180
	return [3]float32{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// Direction returns the direction the light travels.
func (s Sun) Direction() [3]float32 {
	v := s.ToSun()
	return [3]float32{-v[0], -v[1], -v[2]}
}
