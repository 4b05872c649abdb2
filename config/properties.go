package config

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// AquiferProperties are the geometry inputs obtained from the YAML input file
type AquiferProperties struct {
	Title          string    `yaml:"Title"`
	Dim            int       `yaml:"Dim"`      // Problem dimension, 2 or 3
	GeomType       string    `yaml:"GeomType"` // BOX or FILE
	LeftLowerPoint []float64 `yaml:"LeftLowerPoint"`
	Length         []float64 `yaml:"Length"`
	Nxyz           []int     `yaml:"Nxyz"`
	VertDiscr      []float64 `yaml:"VertDiscr"` // Relative node elevations, 0 to 1
	InputMeshFile  string    `yaml:"InputMeshFile"`

	// Land surface and aquifer base: z0 + gx*x + gy*y
	TopElevation    float64   `yaml:"TopElevation"`
	TopSlope        []float64 `yaml:"TopSlope"`
	BottomElevation float64   `yaml:"BottomElevation"`
	BottomSlope     []float64 `yaml:"BottomSlope"`

	NumPartitions int     `yaml:"NumPartitions"`
	RechargeRate  float64 `yaml:"RechargeRate"` // Per unit horizontal area
}

func (ap *AquiferProperties) Parse(data []byte) error {
	return yaml.Unmarshal(data, ap)
}

func (ap *AquiferProperties) Validate() error {
	if ap.Dim != 2 && ap.Dim != 3 {
		return fmt.Errorf("Dim must be 2 or 3, got %d", ap.Dim)
	}
	switch ap.GeomType {
	case "BOX":
		// Only the horizontal extents are meaningful: the vertical entries
		// are dummies, replaced by VertDiscr and the elevation surfaces
		if len(ap.LeftLowerPoint) < ap.Dim-1 || len(ap.Length) < ap.Dim-1 || len(ap.Nxyz) < ap.Dim-1 {
			return fmt.Errorf("BOX geometry needs %d horizontal entries in LeftLowerPoint, Length and Nxyz", ap.Dim-1)
		}
		for i := 0; i < ap.Dim-1; i++ {
			if ap.Nxyz[i] < 1 {
				return fmt.Errorf("Nxyz entries must be positive, got %d", ap.Nxyz[i])
			}
		}
	case "FILE":
		if ap.Dim != 3 {
			return fmt.Errorf("FILE geometry requires a 3D problem")
		}
		if len(ap.InputMeshFile) == 0 {
			return fmt.Errorf("FILE geometry needs an InputMeshFile")
		}
	default:
		return fmt.Errorf("unknown GeomType %q", ap.GeomType)
	}
	for i := 1; i < len(ap.VertDiscr); i++ {
		if ap.VertDiscr[i] <= ap.VertDiscr[i-1] {
			return fmt.Errorf("VertDiscr must be strictly increasing")
		}
	}
	if ap.NumPartitions < 0 {
		return fmt.Errorf("NumPartitions must be non-negative")
	}
	return nil
}

// NLayers is the number of element layers implied by the vertical
// discretization (1 if none was given)
func (ap *AquiferProperties) NLayers() int {
	if len(ap.VertDiscr) > 1 {
		return len(ap.VertDiscr) - 1
	}
	return 1
}

func (ap *AquiferProperties) slope(s []float64) (gx, gy float64) {
	if len(s) > 0 {
		gx = s[0]
	}
	if len(s) > 1 {
		gy = s[1]
	}
	return
}

// TopSlopes returns the land surface gradient components
func (ap *AquiferProperties) TopSlopes() (gx, gy float64) {
	return ap.slope(ap.TopSlope)
}

// BottomSlopes returns the aquifer base gradient components
func (ap *AquiferProperties) BottomSlopes() (gx, gy float64) {
	return ap.slope(ap.BottomSlope)
}

func (ap *AquiferProperties) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ap.Title)
	fmt.Printf("[%d]\t\t\t= Dim\n", ap.Dim)
	fmt.Printf("[%s]\t\t\t= GeomType\n", ap.GeomType)
	fmt.Printf("%v\t\t= LeftLowerPoint\n", ap.LeftLowerPoint)
	fmt.Printf("%v\t\t= Length\n", ap.Length)
	fmt.Printf("%v\t\t= Nxyz\n", ap.Nxyz)
	fmt.Printf("%v\t\t= VertDiscr\n", ap.VertDiscr)
	fmt.Printf("%8.5f\t\t= TopElevation\n", ap.TopElevation)
	fmt.Printf("%8.5f\t\t= BottomElevation\n", ap.BottomElevation)
	fmt.Printf("[%d]\t\t\t= NumPartitions\n", ap.NumPartitions)
	fmt.Printf("%8.5f\t\t= RechargeRate\n", ap.RechargeRate)
}
