package classify

import "fmt"

// Label is the structural class of a configuration. The set is closed; the
// decision engine always returns one of these.
type Label int

const (
	// Cluster0D: a finite, non-periodic cluster (single atom upward).
	Cluster0D Label = iota

	// Chain1D: a periodic network extending along one direction.
	Chain1D

	// Material2D: a free-standing periodic sheet.
	Material2D

	// Surface2D: a periodic sheet sitting on bulk-like substrate layers.
	Surface2D

	// Bulk3D: a periodic network extending along three directions.
	Bulk3D

	// UnboundedParticles: several disconnected finite components with no
	// dominant structure.
	UnboundedParticles
)

// String returns the canonical label name.
func (l Label) String() string {
	switch l {
	case Cluster0D:
		return "Cluster0D"
	case Chain1D:
		return "Chain1D"
	case Material2D:
		return "Material2D"
	case Surface2D:
		return "Surface2D"
	case Bulk3D:
		return "Bulk3D"
	case UnboundedParticles:
		return "UnboundedParticles"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}
