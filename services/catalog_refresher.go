package services

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-pos/kds"
)

// CatalogRefresher reloads the catalog on a fixed interval.
type CatalogRefresher struct {
	Catalog  *CatalogService
	StopChan chan struct{}
	Interval time.Duration
	Timeout  time.Duration
}

func NewCatalogRefresher(catalog *CatalogService) *CatalogRefresher {
	return &CatalogRefresher{
		Catalog:  catalog,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Minute,
		Timeout:  30 * time.Second,
	}
}

func (cr *CatalogRefresher) Start() {
	go func() {
		ticker := time.NewTicker(cr.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cr.RefreshOnce()
			case <-cr.StopChan:
				return
			}
		}
	}()
}

func (cr *CatalogRefresher) Stop() {
	close(cr.StopChan)
}

// RefreshOnce refreshes and notifies connected views.
func (cr *CatalogRefresher) RefreshOnce() Catalog {
	ctx, cancel := context.WithTimeout(context.Background(), cr.Timeout)
	defer cancel()

	catalog := cr.Catalog.Refresh(ctx)
	kds.BroadcastCatalogRefresh(len(catalog.Items), catalog.Warnings)
	return catalog
}
