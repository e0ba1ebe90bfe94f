package features

// StateSoil is the typical topsoil of a state. PHTenths keeps the upstream
// encoding (6.5 is stored as 65).
type StateSoil struct {
	PHTenths      int
	OrganicCarbon float64
}

// PH returns the pH in natural units.
func (s StateSoil) PH() float64 {
	return float64(s.PHTenths) / 10
}

// StateSoils holds the auto-fill soil profile per state.
var StateSoils = map[string]StateSoil{
	"Andhra Pradesh":    {PHTenths: 72, OrganicCarbon: 0.45},
	"Arunachal Pradesh": {PHTenths: 52, OrganicCarbon: 1.8},
	"Assam":             {PHTenths: 55, OrganicCarbon: 1.1},
	"Bihar":             {PHTenths: 74, OrganicCarbon: 0.5},
	"Chhattisgarh":      {PHTenths: 62, OrganicCarbon: 0.6},
	"Delhi":             {PHTenths: 78, OrganicCarbon: 0.4},
	"Goa":               {PHTenths: 56, OrganicCarbon: 1.2},
	"Gujarat":           {PHTenths: 78, OrganicCarbon: 0.5},
	"Haryana":           {PHTenths: 80, OrganicCarbon: 0.4},
	"Himachal Pradesh":  {PHTenths: 62, OrganicCarbon: 1.4},
	"Jammu and Kashmir": {PHTenths: 68, OrganicCarbon: 1.2},
	"Jharkhand":         {PHTenths: 58, OrganicCarbon: 0.6},
	"Karnataka":         {PHTenths: 65, OrganicCarbon: 0.7},
	"Kerala":            {PHTenths: 54, OrganicCarbon: 1.5},
	"Madhya Pradesh":    {PHTenths: 75, OrganicCarbon: 0.55},
	"Maharashtra":       {PHTenths: 76, OrganicCarbon: 0.6},
	"Manipur":           {PHTenths: 53, OrganicCarbon: 1.6},
	"Meghalaya":         {PHTenths: 50, OrganicCarbon: 2.1},
	"Mizoram":           {PHTenths: 51, OrganicCarbon: 1.9},
	"Nagaland":          {PHTenths: 52, OrganicCarbon: 1.9},
	"Odisha":            {PHTenths: 60, OrganicCarbon: 0.65},
	"Puducherry":        {PHTenths: 70, OrganicCarbon: 0.6},
	"Punjab":            {PHTenths: 81, OrganicCarbon: 0.45},
	"Sikkim":            {PHTenths: 52, OrganicCarbon: 2.2},
	"Tamil Nadu":        {PHTenths: 71, OrganicCarbon: 0.55},
	"Telangana":         {PHTenths: 73, OrganicCarbon: 0.5},
	"Tripura":           {PHTenths: 53, OrganicCarbon: 1.3},
	"Uttar Pradesh":     {PHTenths: 77, OrganicCarbon: 0.45},
	"Uttarakhand":       {PHTenths: 63, OrganicCarbon: 1.3},
	"West Bengal":       {PHTenths: 62, OrganicCarbon: 0.8},
}
