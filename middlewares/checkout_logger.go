package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// CheckoutLoggerMiddleware logs every close attempt with its outcome.
func CheckoutLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID := c.Param("table_id")
		start := time.Now()
		utils.TableLogger(tableID).Info("Closing bill")

		c.Next()

		latency := time.Since(start)
		if c.Writer.Status() == 200 {
			utils.TableLogger(tableID).Infof("Bill closed in %v", latency)
		} else {
			utils.ErrorLogger.WithField("table_id", tableID).
				Errorf("Closing bill failed with status %d after %v", c.Writer.Status(), latency)
		}
	}
}
