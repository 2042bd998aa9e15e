package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redstring/internal/domain"
)

func TestContributionsEndpoints(t *testing.T) {
	date := time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC)
	con := &fakeContributions{
		received: []domain.Contribution{{ID: "c1", Amount: 25000, Date: date, ContributorName: "Acme PAC", RecipientName: "Jane Smith", RecipientID: "1"}},
		given:    []domain.Contribution{},
	}
	app := newTestApp(nil, con, nil)

	rr := post(t, app.ContributionsReceived, "/individual-contributions-received", `{"id":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{
		"id":"c1","amount":25000,"date":"2020-10-01T00:00:00Z",
		"contributor_name":"Acme PAC","contributor_id":"",
		"recipient_name":"Jane Smith","recipient_id":"1"
	}]`, rr.Body.String())
	assert.Equal(t, "1", con.lastID)

	rr = post(t, app.ContributionsGiven, "/individual-contributions-given", `{"individual_id":"7"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, "7", con.lastID)
}

func TestContributionsRequireID(t *testing.T) {
	app := newTestApp(nil, nil, nil)
	rr := post(t, app.ContributionsGiven, "/individual-contributions-given", `{"id":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
