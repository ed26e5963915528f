package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// GetAllTables -> grid meja beserta ringkasan bill aktif
func (tc *TableController) GetAllTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of tables", tc.Tables.Summaries())
}

func (tc *TableController) GetTable(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Table detail", tc.Tables.Summary(c.Param("table_id")))
}
