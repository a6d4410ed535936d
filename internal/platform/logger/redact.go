package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxTextLen bounds free-text values (note bodies, chat messages, prompts).
const maxTextLen = 120

// Redaction decides what a key/value pair may reveal. The zero value logs
// everything as given.
type Redaction struct {
	Enabled  bool
	HashSalt string
}

func (r Redaction) kvs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !r.Enabled {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		name := toString(kv[i])
		out = append(out, name, r.value(strings.ToLower(strings.TrimSpace(name)), kv[i+1]))
	}
	return out
}

func (r Redaction) value(key string, val interface{}) interface{} {
	switch {
	case isSecretKey(key):
		return "[REDACTED]"
	case isIdentityKey(key):
		return r.hash(val)
	case isTextKey(key):
		return truncate(toString(val))
	}
	if s, ok := val.(string); ok && looksLikeJWT(s) {
		return "[REDACTED]"
	}
	return val
}

func isSecretKey(key string) bool {
	for _, k := range []string{"token", "authorization", "password", "secret", "api_key", "apikey", "email"} {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

func isIdentityKey(key string) bool {
	return strings.Contains(key, "user_id") || strings.Contains(key, "owner_id")
}

func isTextKey(key string) bool {
	switch key {
	case "content", "message", "prompt", "response", "raw":
		return true
	}
	return false
}

func (r Redaction) hash(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	h.Write([]byte(r.HashSalt))
	h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func truncate(s string) string {
	n := utf8.RuneCountInString(s)
	if n <= maxTextLen {
		return s
	}
	return fmt.Sprintf("%s... (%d chars)", string([]rune(s)[:maxTextLen]), n)
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
