package edges

import "fmt"

// Factory builds a detector from validated parameters.
type Factory func(p Params) Detector

var factories = map[string]Factory{
	"canny": func(p Params) Detector { return NewCannyDetector(p) },
	"sobel": func(p Params) Detector { return NewSobelDetector(p.Threshold) },
}

func register(name string, f Factory) {
	factories[name] = f
}

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string, p Params) (Detector, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if variant == "" {
		variant = "canny"
	}

	f, ok := factories[variant]
	if !ok {
		if variant == "opencv" {
			return nil, fmt.Errorf("opencv detector requires a build with -tags gocv")
		}
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
	return f(p), nil
}
