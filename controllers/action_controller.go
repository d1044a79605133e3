package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"travel-backend/actions"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActionController is the dialogue engine's custom action endpoint.
type ActionController struct {
	Registry *actions.Registry
}

func NewActionController(registry *actions.Registry) *ActionController {
	return &ActionController{Registry: registry}
}

// POST /webhook
func (c *ActionController) Webhook(ctx *gin.Context) {
	var req actions.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid action request", "details": err.Error()})
		return
	}

	resp, err := c.Registry.Run(ctx.Request.Context(), req)
	if errors.Is(err, actions.ErrUnknownAction) {
		zap.L().Warn("unknown action", zap.String("action", req.NextAction))
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":       fmt.Sprintf("No registered action found for name '%s'.", req.NextAction),
			"action_name": req.NextAction,
		})
		return
	}
	if err != nil {
		zap.L().Error("action failed", zap.String("action", req.NextAction), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":       "action execution failed",
			"action_name": req.NextAction,
		})
		return
	}

	zap.L().Debug("action executed",
		zap.String("action", req.NextAction),
		zap.String("sender", req.Tracker.SenderID),
		zap.Int("events", len(resp.Events)),
		zap.Int("responses", len(resp.Responses)))
	ctx.JSON(http.StatusOK, resp)
}

// GET /actions
func (c *ActionController) List(ctx *gin.Context) {
	names := c.Registry.Names()
	out := make([]gin.H, 0, len(names))
	for _, n := range names {
		out = append(out, gin.H{"name": n})
	}
	ctx.JSON(http.StatusOK, out)
}
