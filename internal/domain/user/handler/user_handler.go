package handler

import (
	"net/http"

	"bbq_ordering/internal/domain/user/model"
	"bbq_ordering/internal/domain/user/service"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// LoginInput 登录输入
// 商家传 username，顾客传 phone
type LoginInput struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=customer business"`
}

// Login 处理登录请求
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	var (
		token string
		user  *model.User
		err   error
	)
	if input.Role == model.RoleBusiness {
		if input.Username == "" {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "用户名不能为空")
			return
		}
		token, user, err = h.service.BusinessLogin(input.Username, input.Password)
	} else {
		if input.Phone == "" {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "手机号不能为空")
			return
		}
		token, user, err = h.service.CustomerLogin(input.Phone, input.Password)
	}

	if err != nil {
		if err == service.ErrAuthFailed {
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, "用户名或密码错误")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "登录失败")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"phone":    user.Phone,
		},
	})
}

// Profile 当前登录用户信息
func (h *UserHandler) Profile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	user, err := h.service.GetProfile(userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "用户不存在")
		return
	}
	response.Success(c, user)
}
