package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motomap-api/internal/domain"
	"motomap-api/internal/service"
	"motomap-api/internal/transport/http/response"
)

const motorcyclesBasePath = "/api/v1/motorcycles"

type MotorcycleHandler struct {
	svc *service.MotorcycleService
}

func NewMotorcycleHandler(svc *service.MotorcycleService) *MotorcycleHandler {
	return &MotorcycleHandler{svc: svc}
}

type createMotorcycleRequest struct {
	Plate  string `json:"plate" binding:"required,max=20"`
	Model  string `json:"model" binding:"required,max=100"`
	TagID  string `json:"tagId" binding:"required,max=100"`
	YardID *uint  `json:"yardId" binding:"omitempty,gt=0"`
}

type motorcycleDTO struct {
	ID               uint            `json:"id"`
	Plate            string          `json:"plate"`
	Model            string          `json:"model"`
	TagID            string          `json:"tagId"`
	YardID           *uint           `json:"yardId,omitempty"`
	LastSeenAt       *time.Time      `json:"lastSeenAt,omitempty"`
	LastSeenReaderID *uint           `json:"lastSeenReaderId,omitempty"`
	Links            []response.Link `json:"links"`
}

func toMotorcycleDTO(m *domain.Motorcycle, withWrite bool) motorcycleDTO {
	return motorcycleDTO{
		ID:               m.ID,
		Plate:            m.Plate,
		Model:            m.Model,
		TagID:            m.TagID,
		YardID:           m.YardID,
		LastSeenAt:       m.LastSeenAt,
		LastSeenReaderID: m.LastSeenReaderID,
		Links:            response.ItemLinks(motorcyclesBasePath, m.ID, withWrite),
	}
}

func (h *MotorcycleHandler) List(c *gin.Context) {
	q := response.ParsePageQuery(c)
	motos, total, err := h.svc.List(c.Request.Context(), q.Offset(), q.Size)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	dtos := make([]motorcycleDTO, 0, len(motos))
	for i := range motos {
		dtos = append(dtos, toMotorcycleDTO(&motos[i], true))
	}
	response.WritePageHeader(c, response.NewPageMeta(total, q))
	c.JSON(http.StatusOK, gin.H{
		"data":  dtos,
		"links": response.ListLinks(motorcyclesBasePath, q, total),
	})
}

func (h *MotorcycleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMotorcycleDTO(m, false))
}

func (h *MotorcycleHandler) Create(c *gin.Context) {
	var req createMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req.Plate, req.Model, req.TagID, req.YardID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", motorcyclesBasePath, m.ID))
	c.JSON(http.StatusCreated, toMotorcycleDTO(m, false))
}

func (h *MotorcycleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req createMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.Plate, req.Model, req.TagID, req.YardID); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MotorcycleHandler) Delete(c *gin.Context) {
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
