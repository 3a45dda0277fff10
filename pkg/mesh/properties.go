package mesh

// DesorbType selects the angular distribution of desorbed particles
type DesorbType int

const (
	DesorbNone DesorbType = iota
	DesorbUniform
	DesorbCosine
	DesorbCosineN
)

// Reflection describes how particles bounce off a facet
type Reflection struct {
	Diffuse        float64
	Specular       float64
	CosineExponent float64
}

// CountingFlags select which hit events the simulator records
type CountingFlags struct {
	Desorption  bool
	Absorption  bool
	Reflection  bool
	Transparent bool
	ACD         bool
	Direction   bool
}

// TextureRequest is the requested texture cell density
type TextureRequest struct {
	Enabled bool
	RatioU  float64
	RatioV  float64
}

// AngleMapParams controls incident angle recording
type AngleMapParams struct {
	Record         bool
	PhiWidth       int
	ThetaLowerRes  int
	ThetaHigherRes int
	ThetaLimit     float64
}

// Properties holds the physics and rendering parameters of a facet.
// The editing engine never interprets them; it copies them from a
// source facet to every facet derived from it.
type Properties struct {
	Sticking    float64
	Opacity     float64
	Temperature float64

	Outgassing     float64
	OutgassingMap  []float64
	DesorbType     DesorbType
	DesorbExponent float64

	Reflection Reflection
	TwoSided   bool
	Counting   CountingFlags

	Texture     TextureRequest
	AngleMap    AngleMapParams
	ProfileType int

	// Structure is the superstructure the facet belongs to, SuperDest the
	// structure it links to (0 for none)
	Structure    int
	SuperDest    int
	TeleportDest int

	Moving   bool
	Volatile bool
}

// DefaultProperties returns the parameters of a freshly created facet
func DefaultProperties() Properties {
	return Properties{
		Opacity:     1,
		Temperature: 293.15,
		Reflection:  Reflection{Diffuse: 1, CosineExponent: 1},
		Counting:    CountingFlags{Absorption: true},
	}
}

// Clone returns a deep copy
func (p Properties) Clone() Properties {
	c := p
	if p.OutgassingMap != nil {
		c.OutgassingMap = append([]float64(nil), p.OutgassingMap...)
	}
	return c
}
