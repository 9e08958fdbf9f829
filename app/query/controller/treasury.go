package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"go.uber.org/zap"
)

// HandleTokenTreasury returns the DAO's treasury valuation for a trailing
// window of days ending today.
// Endpoint: GET /daos/{key}/treasury/token-series?days=<n>&sort=<asc|desc>
func (c *Controller) HandleTokenTreasury(w http.ResponseWriter, r *http.Request) {
	daoKey := mux.Vars(r)["key"]
	if daoKey == "" {
		writeError(w, http.StatusBadRequest, "missing dao key")
		return
	}

	days, order, err := parseTreasurySpec(r)
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

	result, err := handle.Treasury.ComputeTokenSeries(ctx, days, order, int32(handle.Dao.TokenDecimals))
	if err != nil {
		c.App.Logger.Error("Token treasury query failed",
			zap.String("dao", daoKey), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	c.writeCachedJSON(ctx, w, r, result)
}
