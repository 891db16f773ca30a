package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/agencyhub/internal/database"
	"github.com/01moynul/agencyhub/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddQuery is the handler for POST /api/query/add
// The inquiry is saved before any mail goes out, and mail failures never
// fail the request.
func (h *Handlers) AddQuery(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input models.CreateQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Email, price plan and message are required")
		return
	}

	// 2. --- Check the Plan Exists ---
	ctx := c.Request.Context()
	plan, err := h.Prices.Get(ctx, input.PriceCardID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			fail(c, http.StatusNotFound, "Price plan not found")
			return
		}
		h.serverError(c, "Failed to submit query", err)
		return
	}

	// 3. --- Save to Database ---
	q := &models.Query{
		Email:       strings.TrimSpace(input.Email),
		PriceCardID: plan.ID,
		Message:     strings.TrimSpace(input.Message),
	}
	if err := h.Queries.Create(ctx, q); err != nil {
		h.serverError(c, "Failed to submit query", err)
		return
	}

	// 4. --- Notify (best effort) ---
	if h.Notifier != nil {
		if err := h.Notifier.QuerySubmitted(ctx, q, plan); err != nil {
			h.log(c).Warn("query saved but notification failed", zap.String("query_id", q.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Query submitted successfully",
	})
}

// ListQueries is the handler for GET /api/query/all
func (h *Handlers) ListQueries(c *gin.Context) {
	queries, err := h.Queries.ListWithPlans(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to list queries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "queries": queries})
}

// RemoveQuery is the handler for GET /api/query/remove?id=
func (h *Handlers) RemoveQuery(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		fail(c, http.StatusBadRequest, "Query id is required")
		return
	}

	deleted, err := h.Queries.Delete(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "Failed to remove query", err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Query not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Query removed"})
}
