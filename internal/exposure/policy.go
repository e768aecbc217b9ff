package exposure

import "fmt"

// BiasPolicy selects which computed bias values reach the asciifier.
type BiasPolicy int

const (
	// BiasNonPositive applies only bias <= 0.
	BiasNonPositive BiasPolicy = iota
	// BiasPositive applies only bias >= 0.
	BiasPositive
	// BiasFull applies the bias unchanged.
	BiasFull
	// BiasOff always applies zero.
	BiasOff
)

// String returns the config name of the policy.
func (p BiasPolicy) String() string {
	switch p {
	case BiasNonPositive:
		return "non-positive"
	case BiasPositive:
		return "positive"
	case BiasFull:
		return "full"
	case BiasOff:
		return "off"
	default:
		return fmt.Sprintf("BiasPolicy(%d)", int(p))
	}
}

// ParseBiasPolicy parses a config name. The empty string selects the
// default.
func ParseBiasPolicy(s string) (BiasPolicy, error) {
	switch s {
	case "", "non-positive":
		return BiasNonPositive, nil
	case "positive":
		return BiasPositive, nil
	case "full":
		return BiasFull, nil
	case "off":
		return BiasOff, nil
	default:
		return 0, fmt.Errorf("unknown bias policy %q", s)
	}
}

// Apply filters a computed bias.
func (p BiasPolicy) Apply(bias float64) float64 {
	switch p {
	case BiasNonPositive:
		if bias > 0 {
			return 0
		}
		return bias
	case BiasPositive:
		if bias < 0 {
			return 0
		}
		return bias
	case BiasFull:
		return bias
	default:
		return 0
	}
}
