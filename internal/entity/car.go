package entity

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"carprice/internal/common"
)

const (
	FuelCNG    = "CNG"
	FuelDiesel = "Diesel"
	FuelPetrol = "Petrol"

	OwnerFirst       = "First"
	OwnerSecond      = "Second"
	OwnerThirdOrMore = "Third or more"

	TransmissionManual    = "Manual"
	TransmissionAutomatic = "Automatic"
)

// Field domains of the prediction form.
const (
	MinYear, MaxYear, DefaultYear = 1990, 2025, 2015

	MinKilometers, MaxKilometers, StepKilometers, DefaultKilometers = 0, 500000, 1000, 40000

	MinMileage, MaxMileage, StepMileage, DefaultMileage = 5.0, 50.0, 0.5, 18.0

	MinEngine, MaxEngine, StepEngine, DefaultEngine = 600, 5000, 100, 1200
)

// FeatureCount is the length of the vector the price model consumes.
const FeatureCount = 7

// FeatureVector is ordered as
// [fuel, kilometers, ownership, transmission, year, mileage, engine].
type FeatureVector [FeatureCount]float64

func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

type option struct {
	name string
	code int
}

var (
	fuelCodes = []option{
		{FuelCNG, 1},
		{FuelDiesel, 2},
		{FuelPetrol, 3},
	}
	ownershipCodes = []option{
		{OwnerFirst, 1},
		{OwnerSecond, 2},
		{OwnerThirdOrMore, 3},
	}
	transmissionCodes = []option{
		{TransmissionManual, 1},
		{TransmissionAutomatic, 2},
	}
)

func lookup(opts []option, name string) (int, bool) {
	for _, o := range opts {
		if o.name == name {
			return o.code, true
		}
	}
	return 0, false
}

func names(opts []option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.name
	}
	return out
}

func FuelCode(name string) (int, bool)         { return lookup(fuelCodes, name) }
func OwnershipCode(name string) (int, bool)    { return lookup(ownershipCodes, name) }
func TransmissionCode(name string) (int, bool) { return lookup(transmissionCodes, name) }

// Option lists in display order.
func FuelTypes() []string     { return names(fuelCodes) }
func Ownerships() []string    { return names(ownershipCodes) }
func Transmissions() []string { return names(transmissionCodes) }

// CarForm holds the attributes a user enters on the prediction form.
type CarForm struct {
	FuelType         string  `json:"fuel_type"`
	Ownership        string  `json:"ownership"`
	Transmission     string  `json:"transmission"`
	ManufactureYear  int     `json:"manufacture_year"`
	KilometersDriven int     `json:"kilometers_driven"`
	Mileage          float64 `json:"mileage"`
	EngineCapacity   int     `json:"engine_capacity"`
}

func DefaultCarForm() CarForm {
	return CarForm{
		FuelType:         FuelCNG,
		Ownership:        OwnerFirst,
		Transmission:     TransmissionManual,
		ManufactureYear:  DefaultYear,
		KilometersDriven: DefaultKilometers,
		Mileage:          DefaultMileage,
		EngineCapacity:   DefaultEngine,
	}
}

// ParseCarForm reads a submitted form. Missing fields keep their defaults,
// numbers are clamped into their domain, and unknown options or malformed
// numbers are validation errors.
func ParseCarForm(v url.Values) (CarForm, error) {
	f := DefaultCarForm()

	if s := strings.TrimSpace(v.Get("fuel_type")); s != "" {
		f.FuelType = s
	}
	if s := strings.TrimSpace(v.Get("ownership")); s != "" {
		f.Ownership = s
	}
	if s := strings.TrimSpace(v.Get("transmission")); s != "" {
		f.Transmission = s
	}

	var err error
	if f.ManufactureYear, err = intField(v, "manufacture_year", f.ManufactureYear); err != nil {
		return f, err
	}
	if f.KilometersDriven, err = intField(v, "kilometers_driven", f.KilometersDriven); err != nil {
		return f, err
	}
	if f.EngineCapacity, err = intField(v, "engine_capacity", f.EngineCapacity); err != nil {
		return f, err
	}
	if s := strings.TrimSpace(v.Get("mileage")); s != "" {
		m, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return f, fmt.Errorf("%w: mileage %q is not a number", common.ErrValidation, s)
		}
		f.Mileage = m
	}

	return f.Normalize()
}

func intField(v url.Values, key string, def int) (int, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Errorf("%w: %s %q is not a whole number", common.ErrValidation, key, s)
	}
	return n, nil
}

// Normalize checks the categorical fields and clamps the numeric ones.
func (f CarForm) Normalize() (CarForm, error) {
	if _, ok := FuelCode(f.FuelType); !ok {
		return f, fmt.Errorf("%w: unknown fuel type %q", common.ErrValidation, f.FuelType)
	}
	if _, ok := OwnershipCode(f.Ownership); !ok {
		return f, fmt.Errorf("%w: unknown ownership %q", common.ErrValidation, f.Ownership)
	}
	if _, ok := TransmissionCode(f.Transmission); !ok {
		return f, fmt.Errorf("%w: unknown transmission %q", common.ErrValidation, f.Transmission)
	}
	if math.IsNaN(f.Mileage) || math.IsInf(f.Mileage, 0) {
		return f, fmt.Errorf("%w: mileage must be a finite number", common.ErrValidation)
	}

	f.ManufactureYear = clampInt(f.ManufactureYear, MinYear, MaxYear)
	f.KilometersDriven = clampInt(f.KilometersDriven, MinKilometers, MaxKilometers)
	f.EngineCapacity = clampInt(f.EngineCapacity, MinEngine, MaxEngine)
	f.Mileage = math.Min(math.Max(f.Mileage, MinMileage), MaxMileage)
	return f, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Features encodes the form in the fixed model order. The form must have
// passed Normalize; unknown options encode as 0.
func (f CarForm) Features() FeatureVector {
	fuel, _ := FuelCode(f.FuelType)
	owner, _ := OwnershipCode(f.Ownership)
	trans, _ := TransmissionCode(f.Transmission)

	return FeatureVector{
		float64(fuel),
		float64(f.KilometersDriven),
		float64(owner),
		float64(trans),
		float64(f.ManufactureYear),
		f.Mileage,
		float64(f.EngineCapacity),
	}
}
