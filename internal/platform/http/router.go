package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pehchaan-index/pulse-api/internal/business/analytics"
	"github.com/pehchaan-index/pulse-api/internal/repository"
)

// Router wires HTTP handlers.
type Router struct {
	analytics *analytics.Service
	runs      *repository.RunRepository
	snapshots *repository.SnapshotRepository
	origins   string
}

func NewRouter(svc *analytics.Service, runs *repository.RunRepository, snapshots *repository.SnapshotRepository, allowedOrigins string) *gin.Engine {
	r := &Router{
		analytics: svc,
		runs:      runs,
		snapshots: snapshots,
		origins:   allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/updates", r.listUpdates)
		api.GET("/updates/export", r.exportUpdates)
		api.GET("/months", r.listMonths)
		api.GET("/states", r.listStates)
		api.GET("/districts/top", r.topDistricts)
		api.GET("/dashboard", r.getDashboard)
		api.GET("/stats", r.getStats)
		api.POST("/stats/refresh", r.refreshStats)
		api.POST("/import", r.startImport)
		api.GET("/import/status", r.getImportStatus)
		api.GET("/import/runs", r.listImportRuns)
		api.POST("/import/cancel", r.cancelImport)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) listUpdates(c *gin.Context) {
	records, err := r.analytics.Records(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": records,
		"total": len(records),
	})
}

func (r *Router) exportUpdates(c *gin.Context) {
	records, err := r.analytics.Records(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=aadhaar_updates.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{"month", "state", "district", "age_0_5", "age_5_17", "age_18_greater"}); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	for _, rec := range records {
		row := []string{
			rec.Month,
			rec.State,
			rec.District,
			strconv.Itoa(rec.Age0to5),
			strconv.Itoa(rec.Age5to17),
			strconv.Itoa(rec.Age18Plus),
		}
		if err := writer.Write(row); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}
}

func (r *Router) listMonths(c *gin.Context) {
	months, err := r.analytics.Months(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": months})
}

func (r *Router) listStates(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}
	states, err := r.analytics.States(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": states})
}

func (r *Router) topDistricts(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	districts, err := r.analytics.TopDistrictsFor(c.Request.Context(), month, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": districts})
}

func (r *Router) getDashboard(c *gin.Context) {
	dash, err := r.analytics.Dashboard(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (r *Router) getStats(c *gin.Context) {
	stats, err := r.snapshots.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (r *Router) refreshStats(c *gin.Context) {
	stats, err := r.analytics.RefreshSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type startImportReq struct {
	Source string `json:"source"`
	CSV    string `json:"csv"`
	Force  bool   `json:"force"`
}

func (r *Router) startImport(c *gin.Context) {
	var req startImportReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.CSV) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv is required"})
		return
	}
	source := req.Source
	if source == "" {
		source = "api"
	}
	runID, err := r.analytics.StartImport(c.Request.Context(), source, req.CSV, req.Force)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runId":   runID,
		"message": "Import started. Check status with GET /api/import/status?runId=" + runID,
	})
}

func (r *Router) getImportStatus(c *gin.Context) {
	runID := c.Query("runId")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runId is required"})
		return
	}
	run, err := r.runs.GetRun(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (r *Router) listImportRuns(c *gin.Context) {
	runs, err := r.runs.ListRuns(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": runs})
}

type cancelImportReq struct {
	RunID string `json:"runId"`
}

func (r *Router) cancelImport(c *gin.Context) {
	var req cancelImportReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.RunID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runId is required"})
		return
	}
	if !r.analytics.CancelImport(req.RunID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no running import with runId " + req.RunID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runId": req.RunID, "status": "canceling"})
}
