package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RuntimeConfig holds runtime-configurable settings
type RuntimeConfig struct {
	SimulateLatency bool `json:"simulate_latency"`
}

var (
	runtimeConfig     RuntimeConfig
	runtimeConfigLock sync.RWMutex
)

// InitRuntimeConfig initializes runtime config from static config
func InitRuntimeConfig(simulateLatency bool) {
	runtimeConfigLock.Lock()
	defer runtimeConfigLock.Unlock()
	runtimeConfig = RuntimeConfig{SimulateLatency: simulateLatency}
}

// RuntimeLatencyEnabled returns the current simulated-latency switch
func RuntimeLatencyEnabled() bool {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()
	return runtimeConfig.SimulateLatency
}

// RuntimeDelay wraps sleep so it only runs while simulated latency is enabled
func RuntimeDelay(sleep func(time.Duration)) func(time.Duration) {
	return func(d time.Duration) {
		if RuntimeLatencyEnabled() {
			sleep(d)
		}
	}
}

// UpdateLatencySettingsRequest represents the request body for toggling latency
type UpdateLatencySettingsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetLatencySettings returns the current latency configuration
// GET /api/settings/latency
func GetLatencySettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"simulate_latency": RuntimeLatencyEnabled()})
}

// UpdateLatencySettings toggles simulated latency at runtime
// PUT /api/settings/latency
func UpdateLatencySettings(c *gin.Context) {
	var req UpdateLatencySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runtimeConfigLock.Lock()
	runtimeConfig.SimulateLatency = *req.Enabled
	runtimeConfigLock.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message":          "Latency settings updated successfully",
		"simulate_latency": *req.Enabled,
	})
}
