package middleware

import (
	"encoding/json"
	"net/http"
)

// staffIDHeader заголовок с идентификатором сотрудника академии.
// Проставляется API-шлюзом после проверки сессии
const staffIDHeader = "X-Staff-ID"

// Auth проверяет наличие идентификатора сотрудника в запросе.
// Операции записи и управления расписанием доступны только персоналу
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(staffIDHeader) == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{
					"code":    http.StatusUnauthorized,
					"message": "требуется заголовок " + staffIDHeader,
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
