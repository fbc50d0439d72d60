package controllers

import (
	"garage/internal/models"
	"net/http"
)

type statusUpdate struct {
	Status models.Status `json:"status"`
}

func (ac *ApiController) GetAppointments(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		res, err := ac.facade.Appointments.GetByUser(r.Context(), userID)
		respond(ac, w, r, http.StatusOK, res, err)
		return
	}
	res, err := ac.facade.Appointments.GetAll(r.Context())
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var in models.NewAppointment
	if err := decode(w, r, &in); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Appointments.Create(r.Context(), in)
	respond(ac, w, r, http.StatusCreated, res, err)
}

func (ac *ApiController) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var body statusUpdate
	if err := decode(w, r, &body); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Appointments.UpdateStatus(r.Context(), r.PathValue("id"), body.Status)
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var patch models.AppointmentPatch
	if err := decode(w, r, &patch); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Appointments.Update(r.Context(), r.PathValue("id"), patch)
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Appointments.Delete(r.Context(), r.PathValue("id"))
	respond(ac, w, r, http.StatusOK, res, err)
}
