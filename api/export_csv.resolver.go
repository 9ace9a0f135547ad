package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Premkumar5225/global-invest-simulator/internal"
	"github.com/Premkumar5225/global-invest-simulator/internal/export"
)

func (m ApiHandler) allocateCsv(c *gin.Context) {
	var requestBody AllocateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	prefs, err := preferencesFromRequest(requestBody)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	items, err := internal.Allocate(*prefs)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	csvBody, err := export.MarshalAllocation(*prefs, items)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="allocation.csv"`)
	c.Data(200, "text/csv", []byte(csvBody))
}
