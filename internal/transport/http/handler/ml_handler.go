package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motomap-api/internal/ml"
	"motomap-api/internal/transport/http/response"
)

type MLHandler struct {
	predictor *ml.Predictor
}

func NewMLHandler(p *ml.Predictor) *MLHandler { return &MLHandler{predictor: p} }

// Predict classifies a reading as present or stale.
func (h *MLHandler) Predict(c *gin.Context) {
	var in ml.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.predictor.Predict(in))
}
