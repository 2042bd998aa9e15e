package handlers

import (
	"net/http"
)

func (a *App) ContributionsReceived(w http.ResponseWriter, r *http.Request) {
	id, ok := a.individualID(w, r, "contributions received")
	if !ok {
		return
	}
	res, err := a.Contributions.Received(r.Context(), id)
	if err != nil {
		a.fail(w, r, "contributions received", err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) ContributionsGiven(w http.ResponseWriter, r *http.Request) {
	id, ok := a.individualID(w, r, "contributions given")
	if !ok {
		return
	}
	res, err := a.Contributions.Given(r.Context(), id)
	if err != nil {
		a.fail(w, r, "contributions given", err)
		return
	}
	a.json(w, http.StatusOK, res)
}
