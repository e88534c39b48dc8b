package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/priyathamsetti1/aditya-foods/pkg/resp"
	"github.com/priyathamsetti1/aditya-foods/services"
	"github.com/priyathamsetti1/aditya-foods/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// cartLineReq covers increment, decrement and legacy bodies. The user id in
// the body is advisory only; identity comes from the token.
type cartLineReq struct {
	UserID       uint `json:"userId"`
	ItemID       uint `json:"itemId" binding:"required"`
	RestaurantID uint `json:"restaurantId" binding:"required"`
}

// GET /user-cart-items?userId=&restaurantId=
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	if q := c.Query("userId"); q != "" {
		n, err := strconv.ParseUint(q, 10, 32)
		if err != nil || uint(n) != uid {
			resp.Forbidden(c, "forbidden")
			return
		}
	}

	var restID uint
	if q := c.Query("restaurantId"); q != "" {
		n, err := strconv.ParseUint(q, 10, 32)
		if err != nil {
			resp.BadRequest(c, "invalid restaurantId")
			return
		}
		restID = uint(n)
	}

	items, err := h.Svc.Items(uid, restID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	// The checkout screen expects a bare array it can filter.
	c.JSON(http.StatusOK, items)
}

// POST /usercart/add-item
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(uid, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// POST /usercart/increment-item
func (h *CartController) Increment(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req cartLineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Increment(uid, req.RestaurantID, req.ItemID); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// POST /usercart/decrement-item
func (h *CartController) Decrement(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req cartLineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Decrement(uid, req.RestaurantID, req.ItemID); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// POST /delete-items  (clear one restaurant's cart)
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		UserID       uint `json:"userId"`
		RestaurantID uint `json:"restaurantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Clear(uid, req.RestaurantID); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
