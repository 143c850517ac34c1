package chat

import (
	"errors"
	"net/http"
	"strconv"

	"ChatGo/global"
	"ChatGo/middleware"
	"ChatGo/module/chat/service"
	"ChatGo/tools/errs"

	"github.com/gin-gonic/gin"
)

type newChatReq struct {
	Name    string   `json:"name"`
	Members []string `json:"members" binding:"required"`
}

func RegisterRoutes(r gin.IRoutes) {
	middleware.GET(r, "/api/v1/chat/my", HandleMyChats, middleware.RouteOpt{IsAuth: true})
	middleware.POST(r, "/api/v1/chat/new", HandleNewChat, middleware.RouteOpt{IsAuth: true})
	middleware.GET(r, "/api/v1/chat/message/:id", HandleMessages, middleware.RouteOpt{IsAuth: true})
}

func HandleMyChats(c *gin.Context) {
	chats, err := service.ListMyChats(c.Request.Context(), c.GetString(global.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "chats": chats})
}

// HandleNewChat creates a group chat; two distinct members make a direct
// chat instead.
func HandleNewChat(c *gin.Context) {
	var req newChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrBadRequest.WrapMsg(err.Error()))
		return
	}
	creator := c.GetString(global.CtxUserIDKey)

	if len(req.Members) == 1 && req.Members[0] != creator {
		ch, err := service.CreateDirectChat(c.Request.Context(), creator, req.Members[0], req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "chat": ch})
		return
	}

	ch, err := service.CreateGroupChat(c.Request.Context(), creator, req.Name, req.Members)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "chat": ch})
}

// HandleMessages pages the history of one chat, newest page first. Only
// members may read it.
func HandleMessages(c *gin.Context) {
	chatID := c.Param("id")
	userID := c.GetString(global.CtxUserIDKey)

	ch, err := service.GetChat(c.Request.Context(), chatID)
	if err != nil {
		fail(c, err)
		return
	}
	if !ch.HasMember(userID) {
		fail(c, errs.ErrForbidden.WrapMsg("not a chat member"))
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	msgs, total, err := service.ListByChat(c.Request.Context(), chatID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": msgs, "totalPages": pages})
}

func fail(c *gin.Context, err error) {
	ce := &errs.CodeError{}
	if !errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	status := http.StatusInternalServerError
	switch ce.Code {
	case errs.ErrForbidden.Code:
		status = http.StatusForbidden
	case errs.ErrRecordNotFound.Code:
		status = http.StatusNotFound
	case errs.ErrBadRequest.Code:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": false, "code": ce.Code, "message": ce.Msg})
}
