// pkg/api/handlers.go
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/movegoo/panoramai-sub001/pkg/database"
	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
	"github.com/movegoo/panoramai-sub001/pkg/monitor"
)

// Handlers API处理程序
type Handlers struct {
	orchestrator *engine.Orchestrator
	signals      *database.SignalDB
	monitor      *monitor.Monitor
}

// NewHandlers 创建新的API处理程序
func NewHandlers(orchestrator *engine.Orchestrator, signals *database.SignalDB, m *monitor.Monitor) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		signals:      signals,
		monitor:      m,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	if h.monitor != nil && !h.monitor.AllHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": h.monitor.GetAllStatus(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Detect 手动触发一轮检测。内部逐竞品的失败只记日志，
// 这里始终返回成功和汇总数量，即使没有产生任何信号。
func (h *Handlers) Detect(c *gin.Context) {
	advertiserID := c.Query("advertiser_id")

	result, err := h.orchestrator.DetectAll(advertiserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "检测运行失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "检测完成",
		"signals":   len(result.Signals),
		"snapshots": result.SnapshotCount,
	})
}

// ListSignals 查询信号处理程序
func (h *Handlers) ListSignals(c *gin.Context) {
	filter := database.SignalFilter{
		AdvertiserID: c.Query("advertiser_id"),
		Severity:     model.SignalSeverity(c.Query("severity")),
		Platform:     model.Platform(c.Query("platform")),
		UnreadOnly:   c.Query("unread_only") == "true",
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil {
			filter.Limit = limit
		}
	}

	signals, err := h.signals.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询信号失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": signals,
	})
}

// GetSignal 获取单条信号处理程序
func (h *Handlers) GetSignal(c *gin.Context) {
	signal, err := h.signals.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": signal,
	})
}

// UnreadCount 未读信号数处理程序
func (h *Handlers) UnreadCount(c *gin.Context) {
	count, err := h.signals.CountUnread(c.Query("advertiser_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "统计未读信号失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread": count,
	})
}

// MarkRead 标记单条信号已读处理程序
func (h *Handlers) MarkRead(c *gin.Context) {
	if err := h.signals.MarkRead(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// MarkAllRead 批量标记已读处理程序
func (h *Handlers) MarkAllRead(c *gin.Context) {
	count, err := h.signals.MarkAllRead(c.Query("advertiser_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "批量标记已读失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"marked": count,
	})
}
