package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motomap-api/internal/service"
	"motomap-api/internal/transport/http/response"
)

const yardsBasePath = "/api/v1/yards"

type YardHandler struct {
	svc *service.YardService
}

func NewYardHandler(svc *service.YardService) *YardHandler { return &YardHandler{svc: svc} }

type createYardRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"required,max=200"`
}

type readerSummaryDTO struct {
	ID                  uint   `json:"id"`
	SerialNumber        string `json:"serialNumber"`
	LocationDescription string `json:"locationDescription"`
}

type yardDTO struct {
	ID              uint               `json:"id"`
	Name            string             `json:"name"`
	Address         string             `json:"address"`
	ReaderCount     int64              `json:"readerCount"`
	MotorcycleCount int64              `json:"motorcycleCount"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
	Readers         []readerSummaryDTO `json:"readers,omitempty"`
	Links           []response.Link    `json:"links"`
}

func (h *YardHandler) List(c *gin.Context) {
	q := response.ParsePageQuery(c)
	yards, total, err := h.svc.List(c.Request.Context(), q.Offset(), q.Size)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	dtos := make([]yardDTO, 0, len(yards))
	for _, y := range yards {
		dtos = append(dtos, yardDTO{
			ID:              y.ID,
			Name:            y.Name,
			Address:         y.Address,
			ReaderCount:     y.ReaderCount,
			MotorcycleCount: y.MotorcycleCount,
			CreatedAt:       y.CreatedAt,
			UpdatedAt:       y.UpdatedAt,
			Links:           response.ItemLinks(yardsBasePath, y.ID, true),
		})
	}

	response.WritePageHeader(c, response.NewPageMeta(total, q))
	c.JSON(http.StatusOK, gin.H{
		"data":  dtos,
		"links": response.ListLinks(yardsBasePath, q, total),
	})
}

func (h *YardHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	y, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	readers := make([]readerSummaryDTO, 0, len(y.Readers))
	for _, r := range y.Readers {
		readers = append(readers, readerSummaryDTO{
			ID:                  r.ID,
			SerialNumber:        r.SerialNumber,
			LocationDescription: r.LocationDescription,
		})
	}
	c.JSON(http.StatusOK, yardDTO{
		ID:              y.ID,
		Name:            y.Name,
		Address:         y.Address,
		ReaderCount:     y.ReaderCount,
		MotorcycleCount: y.MotorcycleCount,
		CreatedAt:       y.CreatedAt,
		UpdatedAt:       y.UpdatedAt,
		Readers:         readers,
		Links:           response.ItemLinks(yardsBasePath, y.ID, false),
	})
}

func (h *YardHandler) Create(c *gin.Context) {
	var req createYardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	y, err := h.svc.Create(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", yardsBasePath, y.ID))
	c.JSON(http.StatusCreated, yardDTO{
		ID:        y.ID,
		Name:      y.Name,
		Address:   y.Address,
		CreatedAt: y.CreatedAt,
		Links:     response.ItemLinks(yardsBasePath, y.ID, false),
	})
}

func (h *YardHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req createYardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.Name, req.Address); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *YardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
