package models

// Collection names as they appear in the seed document and in metrics labels.
const (
	CollectionUsers        = "users"
	CollectionServices     = "services"
	CollectionVehicles     = "vehicles"
	CollectionAppointments = "appointments"
	CollectionTestimonials = "testimonials"
	CollectionTimeSlots    = "timeSlots"
)

// Dataset is the single aggregate owned by the working store.
type Dataset struct {
	Users        []User        `json:"users"`
	Services     []Service     `json:"services"`
	Vehicles     []Vehicle     `json:"vehicles"`
	Appointments []Appointment `json:"appointments"`
	Testimonials []Testimonial `json:"testimonials"`
	TimeSlots    []TimeSlot    `json:"timeSlots"`
}

// NewDataset returns a dataset with every collection present and empty.
func NewDataset() *Dataset {
	ds := &Dataset{}
	ds.Normalize()
	return ds
}

// Normalize replaces absent collections with empty ones.
func (ds *Dataset) Normalize() *Dataset {
	if ds.Users == nil {
		ds.Users = []User{}
	}
	if ds.Services == nil {
		ds.Services = []Service{}
	}
	if ds.Vehicles == nil {
		ds.Vehicles = []Vehicle{}
	}
	if ds.Appointments == nil {
		ds.Appointments = []Appointment{}
	}
	if ds.Testimonials == nil {
		ds.Testimonials = []Testimonial{}
	}
	if ds.TimeSlots == nil {
		ds.TimeSlots = []TimeSlot{}
	}
	return ds
}

func (ds *Dataset) Counts() map[string]int {
	return map[string]int{
		CollectionUsers:        len(ds.Users),
		CollectionServices:     len(ds.Services),
		CollectionVehicles:     len(ds.Vehicles),
		CollectionAppointments: len(ds.Appointments),
		CollectionTestimonials: len(ds.Testimonials),
		CollectionTimeSlots:    len(ds.TimeSlots),
	}
}
