package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/moviebot/internal/middleware"
	"github.com/user/moviebot/internal/utils"
)

// ==================== 管理接口 ====================

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// AdminLogin 管理员登录，校验口令后签发 JWT
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			utils.BadRequest(c, "口令不能为空且至少 6 位")
			return
		}
		utils.BadRequest(c, "请求格式错误")
		return
	}

	if len(h.adminHash) == 0 {
		utils.Unauthorized(c, "管理接口未启用")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.adminHash, []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "口令错误")
		return
	}

	token, err := middleware.GenerateToken("admin", h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "签发 Token 失败")
		return
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.Success(c, gin.H{"token": token})
}

// AdminStats 运营统计
func (h *Handler) AdminStats(c *gin.Context) {
	users, err := h.Repos.User.Count()
	if err != nil {
		utils.InternalServerError(c, "统计失败")
		return
	}
	movies, err := h.Repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, "统计失败")
		return
	}
	likes, err := h.Repos.Like.Count()
	if err != nil {
		utils.InternalServerError(c, "统计失败")
		return
	}
	seeks, err := h.Repos.Seek.Count()
	if err != nil {
		utils.InternalServerError(c, "统计失败")
		return
	}

	utils.Success(c, gin.H{
		"users":   users,
		"movies":  movies,
		"ratings": likes,
		"seeks":   seeks,
	})
}

// AdminTrending 近期热搜影片
func (h *Handler) AdminTrending(c *gin.Context) {
	hours, err := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if err != nil || hours <= 0 {
		utils.BadRequest(c, "无效的 hours 参数")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		utils.BadRequest(c, "无效的 limit 参数")
		return
	}

	trending, err := h.Repos.Seek.Trending(hours, limit)
	if err != nil {
		utils.InternalServerError(c, "查询失败")
		return
	}

	utils.Success(c, trending)
}
