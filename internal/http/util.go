package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// userIDFromReq 从 X-User-Id 头取用户，未携带时回落到默认用户（单用户部署）
func userIDFromReq(r *http.Request, defaultUserID string) string {
	if v := r.Header.Get("X-User-Id"); v != "" {
		return v
	}
	return defaultUserID
}

// parseAsOf 解析 asOf 查询参数（RFC3339），为空或非法时回落到 fallback
func parseAsOf(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}
	return t
}
