package user

import (
	"errors"
	"net/http"

	"ChatGo/global"
	"ChatGo/middleware"
	"ChatGo/module/user/service"
	"ChatGo/tools/errs"
	"ChatGo/tools/security"

	"github.com/gin-gonic/gin"
)

// Cookie lifetime matches the token TTL.
const cookieMaxAge = 15 * 24 * 60 * 60

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Bio      string `json:"bio"`
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type requestReq struct {
	UserID string `json:"userId" binding:"required"`
}

type acceptReq struct {
	RequestID string `json:"requestId" binding:"required"`
	Accept    bool   `json:"accept"`
}

func RegisterRoutes(r gin.IRoutes) {
	middleware.POST(r, "/api/v1/user/new", HandleRegister, middleware.RouteOpt{})
	middleware.POST(r, "/api/v1/user/login", HandleLogin, middleware.RouteOpt{})
	middleware.GET(r, "/api/v1/user/logout", HandleLogout, middleware.RouteOpt{IsAuth: true})
	middleware.GET(r, "/api/v1/user/me", HandleMe, middleware.RouteOpt{IsAuth: true})
	middleware.GET(r, "/api/v1/user/search", HandleSearch, middleware.RouteOpt{IsAuth: true})
	middleware.PUT(r, "/api/v1/user/sendrequest", HandleSendRequest, middleware.RouteOpt{IsAuth: true})
	middleware.PUT(r, "/api/v1/user/acceptrequest", HandleAcceptRequest, middleware.RouteOpt{IsAuth: true})
	middleware.GET(r, "/api/v1/user/notifications", HandleNotifications, middleware.RouteOpt{IsAuth: true})
}

func HandleRegister(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrBadRequest.WrapMsg(err.Error()))
		return
	}
	u, err := service.Register(c.Request.Context(), req.Name, req.Username, req.Password, req.Bio)
	if err != nil {
		fail(c, err)
		return
	}
	opts := security.DefaultOptions(global.GetJwtSecret())
	token, _, err := security.Generate(opts, u.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u, "message": "welcome, " + u.Name})
}

func HandleLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrBadRequest.WrapMsg(err.Error()))
		return
	}
	opts := security.DefaultOptions(global.GetJwtSecret())
	token, u, err := service.Login(c.Request.Context(), opts, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "message": "welcome back, " + u.Name})
}

func HandleLogout(c *gin.Context) {
	c.SetCookie(global.TokenKey, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func HandleMe(c *gin.Context) {
	u, err := service.FindByID(c.Request.Context(), c.GetString(global.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func HandleSearch(c *gin.Context) {
	users, err := service.Search(c.Request.Context(), c.Query("name"), c.GetString(global.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func HandleSendRequest(c *gin.Context) {
	var req requestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrBadRequest.WrapMsg(err.Error()))
		return
	}
	if _, err := service.SendFriendRequest(c.Request.Context(), c.GetString(global.CtxUserIDKey), req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "friend request sent"})
}

func HandleAcceptRequest(c *gin.Context) {
	var req acceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrBadRequest.WrapMsg(err.Error()))
		return
	}
	ch, err := service.AcceptFriendRequest(c.Request.Context(), c.GetString(global.CtxUserIDKey), req.RequestID, req.Accept)
	if err != nil {
		fail(c, err)
		return
	}
	resp := gin.H{"success": true, "message": "friend request rejected"}
	if ch != nil {
		resp["message"] = "friend request accepted"
		resp["chat"] = ch
	}
	c.JSON(http.StatusOK, resp)
}

func HandleNotifications(c *gin.Context) {
	reqs, err := service.PendingRequests(c.Request.Context(), c.GetString(global.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": reqs})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(global.TokenKey, token, cookieMaxAge, "/", "", false, true)
}

func fail(c *gin.Context, err error) {
	ce := &errs.CodeError{}
	if !errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(httpStatus(ce), gin.H{"success": false, "code": ce.Code, "message": ce.Msg})
}

func httpStatus(ce *errs.CodeError) int {
	switch ce.Code {
	case errs.ErrTokenMissing.Code, errs.ErrTokenInvalid.Code, errs.ErrTokenExpired.Code, errs.ErrBadCredentials.Code:
		return http.StatusUnauthorized
	case errs.ErrForbidden.Code:
		return http.StatusForbidden
	case errs.ErrUserNotFound.Code, errs.ErrRecordNotFound.Code:
		return http.StatusNotFound
	case errs.ErrUserExists.Code, errs.ErrBadRequest.Code:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
