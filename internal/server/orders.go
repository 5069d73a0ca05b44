package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"posOrderManagement/internal/order"
	"posOrderManagement/models"
)

func (s *Server) upsertOrder(c *gin.Context) {
	var in order.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	o, err := s.Orders.CreateOrUpdateOrder(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	status := http.StatusOK
	if in.OrderID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, o)
}

func (s *Server) listOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := models.OrderStatus(c.Query("status"))

	out, err := s.Orders.ListOrders(c.Request.Context(), status, limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := s.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) placeOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Orders.PlaceOrder(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "status": models.OrderStatusPlaced})
}

type selectOrderReq struct {
	OrderID int64 `json:"order_id"`
}

func (s *Server) selectOrder(c *gin.Context) {
	var req selectOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if err := s.Orders.SelectOrder(c.Request.Context(), req.OrderID); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": req.OrderID})
}

func (s *Server) currentSelected(c *gin.Context) {
	id, err := s.Orders.CurrentSelectedOrder(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id})
}
