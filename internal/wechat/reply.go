package wechat

import (
	"encoding/xml"
	"time"
)

// cdata 需要以 CDATA 输出的字段
type cdata struct {
	Text string `xml:",cdata"`
}

// TextReply 文本回复消息
type TextReply struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   cdata    `xml:"ToUserName"`
	FromUserName cdata    `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      cdata    `xml:"MsgType"`
	Content      cdata    `xml:"Content"`
}

// NewTextReply 构造文本回复
func NewTextReply(to, from, content string, now time.Time) *TextReply {
	return &TextReply{
		ToUserName:   cdata{to},
		FromUserName: cdata{from},
		CreateTime:   now.Unix(),
		MsgType:      cdata{MsgTypeText},
		Content:      cdata{content},
	}
}

// Render 输出回复 XML
func (r *TextReply) Render() ([]byte, error) {
	return xml.Marshal(r)
}
