package wechat

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// 消息类型
const (
	MsgTypeText  = "text"
	MsgTypeImage = "image"
	MsgTypeEvent = "event"

	EventSubscribe   = "subscribe"
	EventUnsubscribe = "unsubscribe"
)

// Message 微信推送的消息体（明文模式）
// 不同消息类型共用一个结构，缺失的字段保持零值。
type Message struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   string   `xml:"ToUserName"`
	FromUserName string   `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      string   `xml:"MsgType"`
	Content      string   `xml:"Content"`
	MsgID        int64    `xml:"MsgId"`
	PicURL       string   `xml:"PicUrl"`
	MediaID      string   `xml:"MediaId"`
	Event        string   `xml:"Event"`
	EventKey     string   `xml:"EventKey"`
}

// ParseMessage 解析微信 POST 的 XML 数据
func ParseMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, errors.New("空消息体")
	}

	var msg Message
	if err := xml.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("解析消息失败: %w", err)
	}
	return &msg, nil
}
