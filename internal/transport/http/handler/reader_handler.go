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

const readersBasePath = "/api/v1/readers"

type ReaderHandler struct {
	svc   *service.ReaderService
	motos *service.MotorcycleService
}

func NewReaderHandler(svc *service.ReaderService, motos *service.MotorcycleService) *ReaderHandler {
	return &ReaderHandler{svc: svc, motos: motos}
}

type createReaderRequest struct {
	SerialNumber        string `json:"serialNumber" binding:"required,max=100"`
	LocationDescription string `json:"locationDescription" binding:"required,max=200"`
	YardID              uint   `json:"yardId" binding:"required,gt=0"`
}

type readerDTO struct {
	ID                  uint            `json:"id"`
	SerialNumber        string          `json:"serialNumber"`
	LocationDescription string          `json:"locationDescription"`
	YardID              uint            `json:"yardId"`
	YardName            string          `json:"yardName"`
	Links               []response.Link `json:"links"`
}

func toReaderDTO(r *domain.Reader, withWrite bool) readerDTO {
	return readerDTO{
		ID:                  r.ID,
		SerialNumber:        r.SerialNumber,
		LocationDescription: r.LocationDescription,
		YardID:              r.YardID,
		YardName:            r.Yard.Name,
		Links:               response.ItemLinks(readersBasePath, r.ID, withWrite),
	}
}

func (h *ReaderHandler) List(c *gin.Context) {
	q := response.ParsePageQuery(c)
	readers, total, err := h.svc.List(c.Request.Context(), q.Offset(), q.Size)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	dtos := make([]readerDTO, 0, len(readers))
	for i := range readers {
		dtos = append(dtos, toReaderDTO(&readers[i], true))
	}
	response.WritePageHeader(c, response.NewPageMeta(total, q))
	c.JSON(http.StatusOK, gin.H{
		"data":  dtos,
		"links": response.ListLinks(readersBasePath, q, total),
	})
}

func (h *ReaderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReaderDTO(r, true))
}

func (h *ReaderHandler) Create(c *gin.Context) {
	var req createReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	r, err := h.svc.Create(c.Request.Context(), req.SerialNumber, req.LocationDescription, req.YardID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", readersBasePath, r.ID))
	c.JSON(http.StatusCreated, toReaderDTO(r, false))
}

func (h *ReaderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req createReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.SerialNumber, req.LocationDescription, req.YardID); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReaderHandler) Delete(c *gin.Context) {
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

type sightingRequest struct {
	TagID string `json:"tagId" binding:"required,max=100"`
}

// RecordSighting registers that this reader observed a tag just now.
func (h *ReaderHandler) RecordSighting(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req sightingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	if err := h.motos.RecordSighting(c.Request.Context(), id, req.TagID, time.Now().UTC()); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
