package models

type Condition string

const (
	ConditionUsed          Condition = "used"
	ConditionReconditioned Condition = "reconditioned"
)

func (c Condition) Valid() bool {
	return c == ConditionUsed || c == ConditionReconditioned
}

type Vehicle struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Price       float64   `json:"price"`
	Mileage     int       `json:"mileage"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description,omitempty"`
	Warranty    string    `json:"warranty,omitempty"`
	VIN         string    `json:"vin,omitempty"`
	Features    []string  `json:"features"`
	Images      []string  `json:"images"`
}

// NewVehicle is the create payload for the inventory.
type NewVehicle struct {
	Year        int       `json:"year" validate:"required|min:1900"`
	Make        string    `json:"make" validate:"required"`
	Model       string    `json:"model" validate:"required"`
	Price       float64   `json:"price" validate:"min:0"`
	Mileage     int       `json:"mileage" validate:"min:0"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Warranty    string    `json:"warranty"`
	VIN         string    `json:"vin"`
	Features    []string  `json:"features"`
	Images      []string  `json:"images"`
}

func (nv NewVehicle) Validate() error {
	if err := validateStruct(&nv); err != nil {
		return err
	}
	if !nv.Condition.Valid() {
		return invalid("condition must be %q or %q", ConditionUsed, ConditionReconditioned)
	}
	return nil
}

func (nv NewVehicle) Vehicle(id string) Vehicle {
	return Vehicle{
		ID:          id,
		Year:        nv.Year,
		Make:        nv.Make,
		Model:       nv.Model,
		Price:       nv.Price,
		Mileage:     nv.Mileage,
		Condition:   nv.Condition,
		Description: nv.Description,
		Warranty:    nv.Warranty,
		VIN:         nv.VIN,
		Features:    dedupe(nv.Features),
		Images:      orEmpty(nv.Images),
	}
}

// VehiclePatch is a partial update; nil fields keep the stored value.
type VehiclePatch struct {
	Year        *int       `json:"year,omitempty"`
	Make        *string    `json:"make,omitempty"`
	Model       *string    `json:"model,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Mileage     *int       `json:"mileage,omitempty"`
	Condition   *Condition `json:"condition,omitempty"`
	Description *string    `json:"description,omitempty"`
	Warranty    *string    `json:"warranty,omitempty"`
	VIN         *string    `json:"vin,omitempty"`
	Features    *[]string  `json:"features,omitempty"`
	Images      *[]string  `json:"images,omitempty"`
}

func (p VehiclePatch) Validate() error {
	switch {
	case p.Year != nil && *p.Year < 1900:
		return invalid("year must be 1900 or later")
	case p.Make != nil && *p.Make == "":
		return invalid("make must not be empty")
	case p.Model != nil && *p.Model == "":
		return invalid("model must not be empty")
	case p.Price != nil && *p.Price < 0:
		return invalid("price must not be negative")
	case p.Mileage != nil && *p.Mileage < 0:
		return invalid("mileage must not be negative")
	case p.Condition != nil && !p.Condition.Valid():
		return invalid("condition must be %q or %q", ConditionUsed, ConditionReconditioned)
	}
	return nil
}

// Apply merges the patch into v in place.
func (p VehiclePatch) Apply(v *Vehicle) {
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.Mileage != nil {
		v.Mileage = *p.Mileage
	}
	if p.Condition != nil {
		v.Condition = *p.Condition
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Warranty != nil {
		v.Warranty = *p.Warranty
	}
	if p.VIN != nil {
		v.VIN = *p.VIN
	}
	if p.Features != nil {
		v.Features = dedupe(*p.Features)
	}
	if p.Images != nil {
		v.Images = orEmpty(*p.Images)
	}
}

// dedupe keeps the first occurrence of every feature; features behave like a set.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
