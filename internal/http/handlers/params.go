package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/ctxutil"
)

// userID is set by RequireAuth; handlers behind it never see "".
func userID(c *gin.Context) string {
	return ctxutil.UserID(c.Request.Context())
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.Validation("invalid request body: %v", err)
	}
	return nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apierr.Validation("%s must be a number", key)
	}
	return n, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(c *gin.Context, key string) (time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apierr.Validation("%s must be a date", key)
}
