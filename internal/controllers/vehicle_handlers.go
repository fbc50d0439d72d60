package controllers

import (
	"garage/internal/models"
	"net/http"
)

func (ac *ApiController) GetVehicles(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Vehicles.GetByCondition(r.Context(), r.URL.Query().Get("condition"))
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) GetVehicle(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Vehicles.GetByID(r.Context(), r.PathValue("id"))
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var in models.NewVehicle
	if err := decode(w, r, &in); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Vehicles.Create(r.Context(), in)
	respond(ac, w, r, http.StatusCreated, res, err)
}

func (ac *ApiController) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var patch models.VehiclePatch
	if err := decode(w, r, &patch); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Vehicles.Update(r.Context(), r.PathValue("id"), patch)
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Vehicles.Delete(r.Context(), r.PathValue("id"))
	respond(ac, w, r, http.StatusOK, res, err)
}
