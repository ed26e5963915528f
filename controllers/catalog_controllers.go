package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CatalogController struct {
	Catalog   *services.CatalogService
	Refresher *services.CatalogRefresher
}

func NewCatalogController(catalog *services.CatalogService, refresher *services.CatalogRefresher) *CatalogController {
	return &CatalogController{Catalog: catalog, Refresher: refresher}
}

// GetCatalog -> katalog gabungan, bisa difilter ?category=
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	catalog := cc.Catalog.Snapshot()

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filtered := make([]models.MenuItem, 0, len(catalog.Items))
		for _, item := range catalog.Items {
			if strings.EqualFold(string(item.Category), category) {
				filtered = append(filtered, item)
			}
		}
		catalog.Items = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "Menu catalog", catalog)
}

func (cc *CatalogController) RefreshCatalog(c *gin.Context) {
	catalog := cc.Refresher.RefreshOnce()
	utils.RespondJSON(c, http.StatusOK, "Catalog refreshed", catalog)
}

func (cc *CatalogController) GetStaticItems(c *gin.Context) {
	items, err := cc.Catalog.StaticItems()
	if err != nil {
		utils.ErrorLogger.Printf("Reading static items: %v", err)
	}
	utils.RespondJSON(c, http.StatusOK, "Static items", items)
}

// UpdateStaticItems -> ganti daftar item statis lalu refresh katalog
func (cc *CatalogController) UpdateStaticItems(c *gin.Context) {
	var items []models.MenuItem
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := cc.Catalog.SetStaticItems(items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	catalog := cc.Refresher.RefreshOnce()
	utils.RespondJSON(c, http.StatusOK, "Static items updated", catalog)
}

// GetPortions -> pilihan porsi beserta harga untuk satu item
func (cc *CatalogController) GetPortions(c *gin.Context) {
	item, ok := cc.Catalog.Lookup(c.Param("item_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrItemNotFound)
		return
	}
	if !services.NeedsPortion(item) {
		utils.RespondError(c, http.StatusBadRequest, services.ErrPortionNotAllowed)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Portion options", gin.H{
		"item":     item,
		"portions": services.PortionsFor(item),
	})
}

// UpdatePortionPrices -> simpan harga porsi ke backend
func (cc *CatalogController) UpdatePortionPrices(c *gin.Context) {
	var req models.PortionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	catalog, err := cc.Catalog.UpdatePortionPrices(c.Request.Context(), c.Param("liquor_id"), req.Portions)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			code = http.StatusBadRequest
		}
		utils.RespondError(c, code, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Portion prices updated", catalog)
}
