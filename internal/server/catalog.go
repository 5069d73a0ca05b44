package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"posOrderManagement/models"
)

func (s *Server) listProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	out, err := s.Products.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (s *Server) createProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	created, err := s.Products.Create(c.Request.Context(), &p)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	p.ID = id
	if err := s.Products.Update(c.Request.Context(), &p); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Products.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAddOns(c *gin.Context) {
	var (
		out any
		err error
	)
	// The selection UI only offers applicable add-ons.
	if c.Query("applicable") == "true" {
		out, err = s.AddOns.ListApplicable(c.Request.Context())
	} else {
		out, err = s.AddOns.List(c.Request.Context())
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"add_on_items": out})
}

func (s *Server) createAddOn(c *gin.Context) {
	var a models.AddOnItem
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if a.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	created, err := s.AddOns.Create(c.Request.Context(), &a)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateAddOn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var a models.AddOnItem
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	a.ID = id
	if err := s.AddOns.Update(c.Request.Context(), &a); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteAddOn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.AddOns.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCharges(c *gin.Context) {
	var (
		out any
		err error
	)
	// Same applicability filter as add-ons for the selection UI.
	if c.Query("applicable") == "true" {
		out, err = s.Charges.ListApplicable(c.Request.Context())
	} else {
		out, err = s.Charges.List(c.Request.Context())
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charges": out})
}

func (s *Server) createCharges(c *gin.Context) {
	var ch models.Charges
	if err := c.ShouldBindJSON(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if ch.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	created, err := s.Charges.Create(c.Request.Context(), &ch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateCharges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var ch models.Charges
	if err := c.ShouldBindJSON(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	ch.ID = id
	if err := s.Charges.Update(c.Request.Context(), &ch); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) deleteCharges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Charges.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listPartners(c *gin.Context) {
	out, err := s.Partners.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"delivery_partners": out})
}

type createPartnerReq struct {
	Name string `json:"name"`
}

func (s *Server) createPartner(c *gin.Context) {
	var req createPartnerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	created, err := s.Partners.Create(c.Request.Context(), req.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updatePartnerName(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createPartnerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	p := models.DeliveryPartner{ID: id, Name: req.Name}
	if err := s.Partners.Update(c.Request.Context(), &p); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deletePartner(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Partners.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
