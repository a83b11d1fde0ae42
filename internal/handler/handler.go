package handler

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/moviebot/internal/bot"
	"github.com/user/moviebot/internal/config"
	"github.com/user/moviebot/internal/recommender"
	"github.com/user/moviebot/internal/repository"
	"github.com/user/moviebot/internal/wechat"
)

// Handler HTTP 处理器
type Handler struct {
	Repos      *repository.Repositories
	Config     *config.Config
	Dispatcher *bot.Dispatcher

	// 管理员口令只保存 bcrypt 哈希
	adminHash []byte
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	store := repository.NewStore(repos)
	engine := recommender.NewEngine(store)
	dispatcher := bot.NewDispatcher(store, engine)

	var adminHash []byte
	if cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[启动] 管理员口令哈希失败: %v", err)
		} else {
			adminHash = hash
		}
	}

	return &Handler{
		Repos:      repos,
		Config:     cfg,
		Dispatcher: dispatcher,
		adminHash:  adminHash,
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// WechatVerify 微信服务器接入校验（GET）
// 浏览器直接访问（无参数）时返回固定文本，方便确认服务在线。
func (h *Handler) WechatVerify(c *gin.Context) {
	signature := c.Query("signature")
	timestamp := c.Query("timestamp")
	nonce := c.Query("nonce")
	echostr := c.Query("echostr")

	if signature == "" && timestamp == "" && nonce == "" && echostr == "" {
		c.String(http.StatusOK, "hello, this is handle view")
		return
	}

	if wechat.CheckSignature(h.Config.WechatToken, timestamp, nonce, signature) {
		c.String(http.StatusOK, echostr)
		return
	}

	log.Printf("[微信] 签名校验失败 timestamp=%s nonce=%s", timestamp, nonce)
	c.String(http.StatusOK, "")
}

// WechatMessage 微信消息入口（POST）
func (h *Handler) WechatMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[微信] 读取消息失败: %v", err)
		c.String(http.StatusOK, "success")
		return
	}

	msg, err := wechat.ParseMessage(body)
	if err != nil {
		log.Printf("[微信] 解析消息失败: %v", err)
		c.String(http.StatusOK, "success")
		return
	}

	var reply string
	switch msg.MsgType {
	case wechat.MsgTypeText:
		reply = h.onText(msg)
	case wechat.MsgTypeEvent:
		reply = h.onEvent(msg)
	default:
		// 图片、语音等其他消息类型统一引导到文字指令
		reply = bot.ImageReplyText
	}

	if reply == "" {
		c.String(http.StatusOK, "success")
		return
	}

	out, err := wechat.NewTextReply(msg.FromUserName, msg.ToUserName, reply, time.Now()).Render()
	if err != nil {
		log.Printf("[微信] 渲染回复失败: %v", err)
		c.String(http.StatusOK, "success")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

// onText 文本消息：确保用户已登记后交给指令分发器
func (h *Handler) onText(msg *wechat.Message) string {
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return ""
	}

	user, err := h.Repos.User.Ensure(msg.FromUserName, time.Now())
	if err != nil {
		log.Printf("[微信] 登记用户失败 wx_id=%s: %v", msg.FromUserName, err)
		return ""
	}

	return h.Dispatcher.Handle(user.ID, content)
}

// onEvent 事件消息：目前只处理关注事件
func (h *Handler) onEvent(msg *wechat.Message) string {
	switch msg.Event {
	case wechat.EventSubscribe:
		if _, err := h.Repos.User.Ensure(msg.FromUserName, time.Now()); err != nil {
			log.Printf("[微信] 关注登记失败 wx_id=%s: %v", msg.FromUserName, err)
		}
		return bot.WelcomeText
	case wechat.EventUnsubscribe:
		log.Printf("[微信] 用户取消关注 wx_id=%s", msg.FromUserName)
		return ""
	default:
		return ""
	}
}
