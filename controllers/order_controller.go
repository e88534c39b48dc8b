package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/priyathamsetti1/aditya-foods/pkg/resp"
	"github.com/priyathamsetti1/aditya-foods/services"
	"github.com/priyathamsetti1/aditya-foods/utils"
)

type OrderController struct {
	Orders      *services.OrderService
	Checkout    *services.CheckoutService
	Fulfillment *services.FulfillmentService
}

func NewOrderController(o *services.OrderService, ch *services.CheckoutService, f *services.FulfillmentService) *OrderController {
	return &OrderController{Orders: o, Checkout: ch, Fulfillment: f}
}

// ===== Checkout (server-side payment) =====

// POST /checkout
func (oc *OrderController) DoCheckout(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	result, err := oc.Checkout.Checkout(c.Request.Context(), uid, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"id":         result.OrderID,
		"total":      result.Total,
		"payment_id": result.PaymentID,
	})
}

// ===== Legacy client-side payment =====

// POST /place-order
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.PlaceOrder(c.Request.Context(), uid, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": out.ID})
}

// ===== Listing =====

// GET /orders, scoped to the caller, never the whole table.
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.Orders.ListForCaller(utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	o, err := oc.Orders.Detail(utils.CurrentUserID(c), utils.CurrentRole(c), orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ===== Fulfillment =====

// POST /orders/:id/verify   (admin only)
func (oc *OrderController) Verify(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	okOtp, err := oc.Fulfillment.Verify(utils.CurrentUserID(c), orderID, req.OTP)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": okOtp})
}

// PUT /orders/:id/complete   (admin only)
func (oc *OrderController) Complete(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := oc.Fulfillment.Complete(utils.CurrentUserID(c), orderID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
