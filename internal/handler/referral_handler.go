package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"referral_tracker/internal/model"
	"referral_tracker/internal/policy"
	"referral_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ReferralHandler handles referral related requests
type ReferralHandler struct {
	service service.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(s service.ReferralService) *ReferralHandler {
	return &ReferralHandler{service: s}
}

// Helper to assemble the requester identity from the auth middleware context
func getRequester(c *gin.Context) (policy.Requester, error) {
	userID, err := getAuthUserID(c)
	if err != nil {
		return policy.Requester{}, err
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		return policy.Requester{}, err
	}
	return policy.Requester{ID: userID, Role: role}, nil
}

func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	referral, err := h.service.CreateReferral(c.Request.Context(), requester, req)
	if err != nil {
		log.Printf("Error creating referral: %v", err) // Log detailed error
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create referral"})
		return
	}
	c.JSON(http.StatusCreated, referral)
}

func (h *ReferralHandler) GetReferrals(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	referrals, err := h.service.GetReferrals(c.Request.Context(), requester)
	if err != nil {
		log.Printf("Error getting referrals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve referrals"})
		return
	}
	if referrals == nil {
		referrals = []model.Referral{}
	}
	c.JSON(http.StatusOK, referrals)
}

func (h *ReferralHandler) GetReferralByID(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral ID"})
		return
	}

	referral, err := h.service.GetReferralByID(c.Request.Context(), requester, referralID)
	if err != nil {
		if errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error getting referral by ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve referral"})
		}
		return
	}
	c.JSON(http.StatusOK, referral)
}

func (h *ReferralHandler) UpdateReferralStatus(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral ID"})
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	referral, err := h.service.UpdateReferralStatus(c.Request.Context(), requester, referralID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this referral"})
		} else {
			log.Printf("Error updating referral status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update referral status"})
		}
		return
	}
	c.JSON(http.StatusOK, referral)
}

func (h *ReferralHandler) UpdateReferral(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral ID"})
		return
	}

	var req model.UpdateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	referral, err := h.service.UpdateReferral(c.Request.Context(), requester, referralID, req)
	if err != nil {
		if errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error updating referral: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update referral"})
		}
		return
	}
	c.JSON(http.StatusOK, referral)
}

func (h *ReferralHandler) DeleteReferral(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral ID"})
		return
	}

	deleted, err := h.service.DeleteReferral(c.Request.Context(), requester, referralID)
	if err != nil {
		if errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this referral"})
		} else {
			log.Printf("Error deleting referral: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete referral"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Referral removed",
		"deleted_referral": deleted,
	})
}

// RegisterReferralRoutes registers referral routes behind the JWT middleware
func (h *ReferralHandler) RegisterReferralRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	referralGroup := rg.Group("/referrals")
	referralGroup.Use(jwtAuthMW)
	{
		referralGroup.POST("", h.CreateReferral)
		referralGroup.GET("", h.GetReferrals)
		referralGroup.GET("/:id", h.GetReferralByID)
		referralGroup.PUT("/:id", h.UpdateReferral)
		referralGroup.PUT("/:id/status", h.UpdateReferralStatus)
		referralGroup.DELETE("/:id", h.DeleteReferral)
	}
}
