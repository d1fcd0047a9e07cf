package scene

// Point is one renderable particle. Life is 1 for static particles; for trail
// particles it scales point size and alpha.
type Point struct {
	Position Vec3
	Color    RGB
	Life     float64
}

// Frame is everything the renderer needs for one display refresh. The slices
// alias simulator buffers and are only valid until the next Step.
type Frame struct {
	// Tree positions never change; colors are rewritten each frame.
	TreePositions []Vec3
	TreeColors    []RGB
	// Trail particles in slot order, including dead ones (Life == 0).
	Trail []Point

	TreeRotation   float64 // accumulated Y rotation of the tree, radians
	Scale          float64 // uniform scale of tree and star
	LightIntensity float64
	StarRotation   float64
	StarEmissive   float64
	StarY          float64

	Silhouette Silhouette
	// TimeMs is the wall clock used for twinkle, in milliseconds.
	TimeMs float64
}
