package wechat

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// Signature 计算微信接入签名
// 规则：token、timestamp、nonce 按字典序排序后拼接，取 sha1 十六进制。
func Signature(token, timestamp, nonce string) string {
	parts := []string{token, timestamp, nonce}
	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

// CheckSignature 校验微信服务器签名
func CheckSignature(token, timestamp, nonce, signature string) bool {
	expected := Signature(token, timestamp, nonce)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
