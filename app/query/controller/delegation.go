package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"go.uber.org/zap"
)

// HandleDelegationPercentage returns one page of the DAO's daily delegated
// supply percentage series.
// Endpoint: GET /daos/{key}/governance/delegation-percentage?after=&before=&startDate=&endDate=&sort=&limit=
func (c *Controller) HandleDelegationPercentage(w http.ResponseWriter, r *http.Request) {
	daoKey := mux.Vars(r)["key"]
	if daoKey == "" {
		writeError(w, http.StatusBadRequest, "missing dao key")
		return
	}

	query, err := parseSeriesQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	if body, ok := c.cachedResponse(ctx, r); ok {
		writeRawJSON(w, body)
		return
	}

	handle, ok := c.App.LoadDao(ctx, daoKey)
	if !ok {
		writeError(w, http.StatusNotFound, "dao not indexed")
		return
	}

	page, err := handle.Delegation.ComputePercentageSeries(ctx, query)
	if err != nil {
		c.App.Logger.Error("Delegation percentage query failed",
			zap.String("dao", daoKey), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	c.writeCachedJSON(ctx, w, r, page)
}
