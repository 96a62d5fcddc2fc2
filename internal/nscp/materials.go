package nscp

import "fmt"

// Material and section constants used by the column check.
// Units follow the kgf-cm system common on local drawings: f'c in kgf/cm²,
// column dimensions in cm, loads in kgf/m² and tonnes.

const (
	// Strength reduction factor for compression-controlled tied members
	// Section 421.2.2
	PhiCompression = 0.65

	// Empirical reduction of the concrete stress for tied columns (0.85f'c)
	TiedReduction = 0.85

	// Minimum longitudinal steel ratio for columns (1% of Ag)
	// Section 410.6.1.1
	RhoMinColumn = 0.01

	// Minimum number of longitudinal bars in a rectangular tied column
	// Section 410.7.3.1
	MinBarsTied = 4

	// Typical storey height used for column and facade quantities (m)
	FloorHeight = 3.2
)

// ConcreteGrade is a specified compressive strength f'c in kgf/cm².
type ConcreteGrade int

// Concrete grades offered for columns.
const (
	FC210 ConcreteGrade = 210
	FC280 ConcreteGrade = 280
	FC350 ConcreteGrade = 350
	FC420 ConcreteGrade = 420
)

// ConcreteGrades lists every supported grade, weakest first.
var ConcreteGrades = []ConcreteGrade{FC210, FC280, FC350, FC420}

// ParseConcreteGrade maps a numeric f'c onto a supported grade.
func ParseConcreteGrade(fc int) (ConcreteGrade, error) {
	for _, g := range ConcreteGrades {
		if int(g) == fc {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unsupported concrete strength f'c=%d kgf/cm² (expected one of 210, 280, 350, 420)", fc)
}

// Fc returns the compressive strength in kgf/cm².
func (g ConcreteGrade) Fc() float64 {
	return float64(g)
}

// MPa returns the approximate compressive strength in MPa.
func (g ConcreteGrade) MPa() float64 {
	return float64(g) * 0.0980665
}

func (g ConcreteGrade) String() string {
	return fmt.Sprintf("f'c=%d kgf/cm²", int(g))
}
