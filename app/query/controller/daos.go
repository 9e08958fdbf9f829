package controller

import (
	"net/http"

	"github.com/daolens/daolens/app/query/types"
)

// HandleDaos returns the DAOs the service currently serves.
// Endpoint: GET /daos
func (c *Controller) HandleDaos(w http.ResponseWriter, r *http.Request) {
	daos := make([]types.Dao, 0)
	c.App.Daos.Range(func(_ string, handle *types.DaoHandle) bool {
		daos = append(daos, handle.Dao)
		return true
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": daos,
	})
}
