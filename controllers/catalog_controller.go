package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/priyathamsetti1/aditya-foods/pkg/resp"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/services"
	"github.com/priyathamsetti1/aditya-foods/utils"
)

type CatalogController struct {
	Svc      *services.CatalogService
	UserRepo *repository.UserRepository
}

func NewCatalogController(s *services.CatalogService, ur *repository.UserRepository) *CatalogController {
	return &CatalogController{Svc: s, UserRepo: ur}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// GET /restaurants
func (h *CatalogController) Restaurants(c *gin.Context) {
	out, err := h.Svc.Restaurants()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	// The home screen expects a bare array.
	c.JSON(http.StatusOK, out)
}

// GET /food-items/:restaurantId
func (h *CatalogController) MenuFor(c *gin.Context) {
	restID, ok := paramUint(c, "restaurantId")
	if !ok {
		return
	}
	items, err := h.Svc.MenuFor(restID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /admins/:adminId/food-items   (admin only, own menu)
func (h *CatalogController) AdminMenu(c *gin.Context) {
	adminID, ok := paramUint(c, "adminId")
	if !ok {
		return
	}
	if adminID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}
	items, err := h.Svc.AdminMenu(adminID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /food-items   (admin only)
func (h *CatalogController) CreateFoodItem(c *gin.Context) {
	var req services.NewFoodItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.AddFoodItem(utils.CurrentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.Created(c, item)
}

// DELETE /food-items/:id   (admin only, own item)
func (h *CatalogController) DeleteFoodItem(c *gin.Context) {
	itemID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RemoveFoodItem(utils.CurrentUserID(c), itemID); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /users/:id
func (h *CatalogController) GetUser(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	u, err := h.UserRepo.FindByID(userID)
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           u.ID,
		"name":         u.Name,
		"phone_number": u.PhoneNumber,
	})
}
