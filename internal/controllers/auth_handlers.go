package controllers

import (
	"garage/internal/models"
	"garage/internal/providers"
	"net/http"
)

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(w, r, &creds); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Auth.Login(r.Context(), creds)
	if err != nil {
		ac.logger.Infof(providers.TypePost, "Failed login for %s", creds.Email)
	}
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decode(w, r, &reg); err != nil {
		ac.fail(w, r, err)
		return
	}
	res, err := ac.facade.Auth.Register(r.Context(), reg)
	respond(ac, w, r, http.StatusCreated, res, err)
}

func (ac *ApiController) Logout(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Auth.Logout(r.Context())
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) Session(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Auth.CurrentUser(r.Context())
	respond(ac, w, r, http.StatusOK, res, err)
}
