package handlers

import (
	"net/http"
	"strings"
)

type searchRequest struct {
	Query string `json:"query"`
}

// individualRequest accepts the id under "id" and, for older clients,
// "individual_id".
type individualRequest struct {
	ID           string `json:"id"`
	IndividualID string `json:"individual_id"`
}

type resolvedID struct {
	ID string `validate:"required"`
}

func (req individualRequest) resolve() resolvedID {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = strings.TrimSpace(req.IndividualID)
	}
	return resolvedID{ID: id}
}

func (a *App) SearchIndividuals(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, "search individuals", err)
		return
	}
	results, err := a.Individuals.Search(r.Context(), req.Query, a.SearchLimit)
	if err != nil {
		a.fail(w, r, "search individuals", err)
		return
	}
	a.json(w, http.StatusOK, results)
}

func (a *App) GetIndividual(w http.ResponseWriter, r *http.Request) {
	id, ok := a.individualID(w, r, "get individual")
	if !ok {
		return
	}
	individual, err := a.Individuals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, "get individual", err)
		return
	}
	a.json(w, http.StatusOK, individual)
}

// individualID decodes and validates an individualRequest, writing the
// error response itself when the body is unusable.
func (a *App) individualID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	var req individualRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, op, err)
		return "", false
	}
	resolved := req.resolve()
	if err := a.check(resolved); err != nil {
		a.fail(w, r, op, err)
		return "", false
	}
	return resolved.ID, true
}
