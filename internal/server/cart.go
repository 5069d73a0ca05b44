package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := s.Carts.GetCartItem(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) increaseQuantity(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	item, err := s.Carts.IncreaseQuantity(c.Request.Context(), orderID, productID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) decreaseQuantity(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	item, err := s.Carts.DecreaseQuantity(c.Request.Context(), orderID, productID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) toggleAddOn(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	item, err := s.Carts.ToggleAddOnItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) toggleCharge(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	chargesID, ok := pathID(c, "chargesId")
	if !ok {
		return
	}
	item, err := s.Carts.ToggleCharge(c.Request.Context(), orderID, chargesID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type updatePartnerReq struct {
	PartnerID int64 `json:"partner_id"`
}

func (s *Server) updatePartner(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updatePartnerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	item, err := s.Carts.UpdateDeliveryPartner(c.Request.Context(), orderID, req.PartnerID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
