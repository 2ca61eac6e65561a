package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"solarac_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// selectedTopic reads ?topic=, defaulting to All.
func selectedTopic(c *gin.Context) string {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		return models.AllTopics
	}
	return topic
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Refresh dashboard
// @Description  Downloads both exports and recomputes the weekly summary for this session. On failure the previous result is kept.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.RefreshResult
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string  "schema or parse error"
// @Failure      502  {object}  map[string]string  "retrieval error"
// @Router       /api/v1/dashboard/refresh [post]
// @Security     BearerAuth
func (h *Handler) refresh(c *gin.Context) {
	uid := currentUser(c)
	res, err := h.services.Dashboard.Refresh(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, "dashboard_refresh_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Dashboard view
// @Description  topic=All (default) adds the latest comment per device after Topic; a device id returns its rows and comment history.
// @Tags         dashboard
// @Produce      json
// @Param        topic  query     string  false  "All or a device id"  example(All)
// @Success      200    {object}  service.View
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string  "unknown topic"
// @Failure      409    {object}  map[string]string  "refresh first"
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	uid := currentUser(c)
	topic := selectedTopic(c)
	view, err := h.services.Dashboard.View(c.Request.Context(), uid, topic)
	if err != nil {
		h.respondError(c, "dashboard_view_failed", err, "user_id", uid, "topic", topic)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Device selector options
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "refresh first"
// @Router       /api/v1/dashboard/topics [get]
// @Security     BearerAuth
func (h *Handler) getTopics(c *gin.Context) {
	uid := currentUser(c)
	topics, err := h.services.Dashboard.Topics(uid)
	if err != nil {
		h.respondError(c, "dashboard_topics_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// @Summary      Export view as CSV
// @Tags         dashboard
// @Produce      text/csv
// @Param        topic  query     string  false  "All or a device id"
// @Success      200    {string}  string  "CSV"
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /api/v1/dashboard/export.csv [get]
// @Security     BearerAuth
func (h *Handler) exportCSV(c *gin.Context) {
	uid := currentUser(c)
	topic := selectedTopic(c)
	view, err := h.services.Dashboard.View(c.Request.Context(), uid, topic)
	if err != nil {
		h.respondError(c, "dashboard_export_failed", err, "user_id", uid, "topic", topic)
		return
	}

	name := unsafeFilenameChars.ReplaceAllString(topic, "_")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="weekly_summary_%s.csv"`, name))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := writeTableCSV(c.Writer, view.Table); err != nil && h.log != nil {
		h.log.Errorw("dashboard_export_write_failed", "err", err, "topic", topic)
	}
}

func writeTableCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) && row[i] != nil {
				record[i] = *row[i]
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
