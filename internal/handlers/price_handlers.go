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

// AddPrice is the handler for POST /api/price/add
func (h *Handlers) AddPrice(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input models.CreatePricePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid price plan: "+err.Error())
		return
	}

	// 2. --- Create Plan Model ---
	plan := &models.PricePlan{
		Price:       float64(*input.Price),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Features:    cleanFeatures(input.Features),
	}

	// 3. --- Save to Database ---
	if err := h.Prices.Create(c.Request.Context(), plan); err != nil {
		h.serverError(c, "Failed to add price plan", err)
		return
	}

	h.log(c).Info("price plan added", zap.String("id", plan.ID), zap.String("category", plan.Category))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Price plan added",
		"price":   plan,
	})
}

// ListPrices is the handler for GET /api/price/all
// Plans come back unfiltered; the site sorts and filters them itself.
func (h *Handlers) ListPrices(c *gin.Context) {
	plans, err := h.Prices.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to list price plans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prices": plans})
}

// RemovePrice is the handler for POST /api/price/remove
// Removing an unknown id succeeds; inquiries referencing the plan are kept.
func (h *Handlers) RemovePrice(c *gin.Context) {
	var input models.PricePlanIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Price plan id is required")
		return
	}

	deleted, err := h.Prices.Delete(c.Request.Context(), input.ID)
	if err != nil {
		h.serverError(c, "Failed to remove price plan", err)
		return
	}

	h.log(c).Info("price plan removed", zap.String("id", input.ID), zap.Bool("existed", deleted))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Price plan removed"})
}

// SinglePrice is the handler for POST /api/price/single
func (h *Handlers) SinglePrice(c *gin.Context) {
	var input models.PricePlanIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Price plan id is required")
		return
	}

	plan, err := h.Prices.Get(c.Request.Context(), input.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			fail(c, http.StatusNotFound, "Price plan not found")
			return
		}
		h.serverError(c, "Failed to fetch price plan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "price": plan})
}

// cleanFeatures trims entries and drops blanks left by the admin form.
func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
