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

// TokenController owns the device-token endpoints: registration on login,
// removal on logout, session re-entry, and the push-token lookup the order
// notifier also uses.
type TokenController struct {
	Svc       *services.AuthService
	TokenRepo *repository.TokenRepository
}

func NewTokenController(s *services.AuthService, tr *repository.TokenRepository) *TokenController {
	return &TokenController{Svc: s, TokenRepo: tr}
}

type storeTokenReq struct {
	UserID  *uint  `json:"user_id"`
	AdminID *uint  `json:"admin_id"`
	Token   string `json:"token" binding:"required"`
}

type tokenOnlyReq struct {
	Token string `json:"token" binding:"required"`
}

// POST /store-token
func (t *TokenController) Store(c *gin.Context) {
	var req storeTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := t.Svc.StoreToken(req.UserID, req.AdminID, req.Token); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"stored": true})
}

// DELETE /delete-token
func (t *TokenController) Delete(c *gin.Context) {
	var req tokenOnlyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := t.Svc.DeleteToken(req.Token); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// POST /verify-token
func (t *TokenController) Verify(c *gin.Context) {
	var req tokenOnlyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	dt, jwtToken, err := t.Svc.VerifyDeviceToken(req.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if dt == nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	out := gin.H{"valid": true, "token": jwtToken}
	if dt.UserID != nil {
		out["user_id"] = *dt.UserID
	}
	if dt.AdminID != nil {
		out["admin_id"] = *dt.AdminID
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin-tokens?adminId=   (admin only, own tokens)
func (t *TokenController) AdminTokens(c *gin.Context) {
	callerID := utils.CurrentUserID(c)

	adminID := callerID
	if q := c.Query("adminId"); q != "" {
		n, err := strconv.ParseUint(q, 10, 32)
		if err != nil {
			resp.BadRequest(c, "invalid adminId")
			return
		}
		adminID = uint(n)
	}
	if adminID != callerID {
		resp.Forbidden(c, "forbidden")
		return
	}

	tokens, err := t.TokenRepo.TokensForAdmin(adminID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
