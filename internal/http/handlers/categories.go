package handlers

import (
	"net/http"
)

type categoryRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
}

type associationRequest struct {
	AssociationID string `json:"association_id" validate:"required"`
}

func (a *App) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := a.Categories.List(r.Context())
	if err != nil {
		a.fail(w, r, "list categories", err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) IndividualsByCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, "individuals by category", err)
		return
	}
	res, err := a.Individuals.ListByCategory(r.Context(), req.CategoryID)
	if err != nil {
		a.fail(w, r, "individuals by category", err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) CategoryAssociations(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, "category associations", err)
		return
	}
	res, err := a.Categories.Associations(r.Context(), req.CategoryID)
	if err != nil {
		a.fail(w, r, "category associations", err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) IndividualsByAssociation(w http.ResponseWriter, r *http.Request) {
	var req associationRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, "individuals by association", err)
		return
	}
	res, err := a.Individuals.ListByAssociation(r.Context(), req.AssociationID)
	if err != nil {
		a.fail(w, r, "individuals by association", err)
		return
	}
	a.json(w, http.StatusOK, res)
}
