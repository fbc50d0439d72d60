package repository

import "garage/internal/models"

// conditionAll is the front end's "no filter" value.
const conditionAll = "all"

type VehicleFilter struct {
	Condition string
}

func (f VehicleFilter) match(v models.Vehicle) bool {
	if f.Condition == "" || f.Condition == conditionAll {
		return true
	}
	return string(v.Condition) == f.Condition
}

type AppointmentFilter struct {
	UserID string
	Status models.Status
}

func (f AppointmentFilter) match(a models.Appointment) bool {
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

type ServiceFilter struct {
	Category string
}

func (f ServiceFilter) match(s models.Service) bool {
	return f.Category == "" || s.Category == f.Category
}

type UserFilter struct {
	Role models.Role
}

func (f UserFilter) match(u models.User) bool {
	return f.Role == "" || u.Role == f.Role
}

func userID(u models.User) string               { return u.ID }
func vehicleID(v models.Vehicle) string         { return v.ID }
func appointmentID(a models.Appointment) string { return a.ID }
