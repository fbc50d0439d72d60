package models

import "time"

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from s to next.
// Work only moves forward; cancellation is always allowed.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s == next || next == StatusCancelled {
		return true
	}
	switch s {
	case StatusScheduled:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

type VehicleInfo struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	VIN   string `json:"vin"`
}

// Appointment keeps snapshots of the service name and vehicle; userId is a weak reference.
type Appointment struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	ServiceID     string      `json:"serviceId"`
	ServiceName   string      `json:"serviceName"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Status        Status      `json:"status"`
	VehicleInfo   VehicleInfo `json:"vehicleInfo"`
	CustomerNotes string      `json:"customerNotes,omitempty"`
	CreatedAt     string      `json:"createdAt"`
}

type NewAppointment struct {
	UserID        string      `json:"userId" validate:"required"`
	ServiceID     string      `json:"serviceId" validate:"required"`
	ServiceName   string      `json:"serviceName"`
	Date          string      `json:"date" validate:"required"`
	Time          string      `json:"time" validate:"required"`
	Status        Status      `json:"status"`
	VehicleInfo   VehicleInfo `json:"vehicleInfo"`
	CustomerNotes string      `json:"customerNotes"`
	CreatedAt     string      `json:"createdAt"`
}

func (na NewAppointment) Validate() error {
	if err := validateStruct(&na); err != nil {
		return err
	}
	if na.Status != "" && !na.Status.Valid() {
		return invalid("unknown status %q", na.Status)
	}
	return nil
}

// AppointmentPatch is a partial update. Only the status can change after booking.
type AppointmentPatch struct {
	Status *Status `json:"status,omitempty"`
}

func (p AppointmentPatch) Validate() error {
	if p.Status == nil {
		return invalid("status is required")
	}
	return nil
}

// Appointment fills defaults: status scheduled, createdAt now.
func (na NewAppointment) Appointment(id string, now time.Time) Appointment {
	a := Appointment{
		ID:            id,
		UserID:        na.UserID,
		ServiceID:     na.ServiceID,
		ServiceName:   na.ServiceName,
		Date:          na.Date,
		Time:          na.Time,
		Status:        na.Status,
		VehicleInfo:   na.VehicleInfo,
		CustomerNotes: na.CustomerNotes,
		CreatedAt:     na.CreatedAt,
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.CreatedAt == "" {
		a.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	return a
}
