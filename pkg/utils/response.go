package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError 发送错误响应，消息放在 msg 字段
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"msg": message})
}

// RespondNoContent 发送204空响应
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondEndpointNotFound 未匹配到任何路由时的响应
func RespondEndpointNotFound(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
}
