// Package productionplan exposes the production plan calculator over HTTP.
package productionplan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/production"
)

const (
	PlanPath   = "/productionplan"
	CostPath   = "/productionplan/cost"
	HealthPath = "/healthz"

	maxBodyBytes = 1 << 20
)

// Planner is the part of production.Service used by the handlers.
type Planner interface {
	Plan(ctx context.Context, p model.Payload) (production.Result, error)
	Costs(p model.Payload) ([]model.PlantCost, error)
}

type errorBody struct {
	Error string `json:"error"`
}

// Register mounts the production plan routes on router.
func Register(router *httprouter.Router, svc Planner) {
	router.POST(PlanPath, NewPlanHandler(svc))
	router.POST(CostPath, NewCostHandler(svc))
	router.GET(HealthPath, health)
}

// NewPlanHandler answers POST /productionplan with the plan as a list of
// {name, p} objects. The plan identifier is returned in the X-Plan-ID header.
func NewPlanHandler(svc Planner) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		p, ok := decodePayload(w, r)
		if !ok {
			return
		}
		res, err := svc.Plan(r.Context(), p)
		if err != nil {
			writeFault(w, err)
			return
		}
		w.Header().Set("X-Plan-ID", res.ID)
		writeJSON(w, http.StatusOK, res.Plan)
	}
}

// NewCostHandler answers POST /productionplan/cost with the EUR/MWh cost of
// every plant in the payload.
func NewCostHandler(svc Planner) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		p, ok := decodePayload(w, r)
		if !ok {
			return
		}
		costs, err := svc.Costs(p)
		if err != nil {
			writeFault(w, err)
			return
		}
		writeJSON(w, http.StatusOK, costs)
	}
}

func health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodePayload(w http.ResponseWriter, r *http.Request) (model.Payload, bool) {
	var p model.Payload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed payload: " + err.Error()})
		return p, false
	}
	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return p, false
	}
	return p, true
}

func writeFault(w http.ResponseWriter, err error) {
	var f *production.Fault
	if errors.As(err, &f) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
