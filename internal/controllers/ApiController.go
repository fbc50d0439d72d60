package controllers

import (
	"errors"
	"garage/internal/api"
	"garage/internal/models"
	"garage/internal/providers"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// ApiController exposes the facade over JSON. Reference data is served through the response cache.
type ApiController struct {
	logger providers.Logger
	facade *api.Facade
	cache  providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, facade *api.Facade, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger: logger,
		facade: facade,
		cache:  cache,
	}
}

type errorBody struct {
	Error *api.Error `json:"error"`
}

func statusFor(code api.Code) int {
	switch code {
	case api.CodeNotFound:
		return http.StatusNotFound
	case api.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case api.CodeEmailTaken, api.CodeInvalidTransition:
		return http.StatusConflict
	case api.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// respond writes res or the error body. The envelope is marshalled through its concrete pointer type.
func respond[T any](ac *ApiController, w http.ResponseWriter, r *http.Request, status int, res api.Envelope[T], err error) {
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	gson, err := json.Marshal(&res)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, status, gson)
}

func (ac *ApiController) fail(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		apiErr = &api.Error{Code: api.CodeInternal, Message: "internal error"}
	}
	status := statusFor(apiErr.Code)
	if status >= http.StatusInternalServerError {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	}

	gson, mErr := json.Marshal(errorBody{Error: apiErr})
	if mErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

// decode reads a JSON body into dst, rejecting unknown fields and bodies over 1 MB.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &api.Error{Code: api.CodeInvalidInput, Message: "malformed request body: " + err.Error()}
	}
	return nil
}

// serveFromCacheOrCompute answers from the response cache when it can. Hits still wait out the simulated delay.
func serveFromCacheOrCompute[T any](ac *ApiController, w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (api.Envelope[T], error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		if err := ac.facade.Wait(r.Context()); err != nil {
			ac.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	gson, err := json.Marshal(&result)
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) GetServices(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	serveFromCacheOrCompute(ac, w, r, "services:"+category, func() (api.Envelope[[]models.Service], error) {
		return ac.facade.Services.GetByCategory(r.Context(), category)
	})
}

func (ac *ApiController) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(ac, w, r, "testimonials", func() (api.Envelope[[]models.Testimonial], error) {
		return ac.facade.Testimonials.GetAll(r.Context())
	})
}

func (ac *ApiController) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(ac, w, r, "time-slots", func() (api.Envelope[[]models.TimeSlot], error) {
		return ac.facade.TimeSlots.GetAll(r.Context())
	})
}

func (ac *ApiController) GetUsers(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Users.GetAll(r.Context())
	respond(ac, w, r, http.StatusOK, res, err)
}

func (ac *ApiController) GetUser(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Users.GetByID(r.Context(), r.PathValue("id"))
	respond(ac, w, r, http.StatusOK, res, err)
}

// Reset restores the seed and drops every cached response.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	res, err := ac.facade.Reset(r.Context())
	if err == nil {
		ac.cache.Clear()
	}
	respond(ac, w, r, http.StatusOK, res, err)
}
