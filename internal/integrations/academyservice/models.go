package academyservice

// Season модель сезона из конфигурационного сервиса академии
type Season struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartMonth string `json:"start_month"` // "2026-09"
	EndMonth   string `json:"end_month"`   // "2027-06"
	IsActive   bool   `json:"is_active"`
}

// Category модель категории обучения (грудничковая, детская, взрослая и т.д.)
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// AgeRule возрастное правило для отладочной генерации слотов:
// какие возрастные рамки допустимы в каждой полосе времени
type AgeRule struct {
	TimeBandID string `json:"time_band_id"`
	MinAge     int    `json:"min_age"`
	MaxAge     int    `json:"max_age"`
	Capacity   int    `json:"capacity"`
}

// ErrorResponse модель ошибки от сервиса академии
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
