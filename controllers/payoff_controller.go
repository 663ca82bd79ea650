package controllers

import (
	"net/http"

	"optionscope/interfaces"
	"optionscope/services"

	"github.com/gin-gonic/gin"
)

// PayoffController handles option payoff calculations
type PayoffController struct{}

// NewPayoffController creates a new payoff controller
func NewPayoffController() *PayoffController {
	return &PayoffController{}
}

// HandleCalculatePayoff computes the full payoff view for one position
// POST /api/v1/payoff
func (pc *PayoffController) HandleCalculatePayoff(c *gin.Context) {
	var input interfaces.OptionPosition
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result := services.CalculatePayoff(&input)

	c.JSON(http.StatusOK, gin.H{
		"result":  result,
		"summary": services.FormatPayoffSummary(&input, result),
	})
}
