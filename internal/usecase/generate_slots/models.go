package generate_slots

import "time"

// Strategy стратегия генерации слотов
type Strategy string

const (
	// StrategyTemplates генерация из шаблонов расписания сезона
	StrategyTemplates Strategy = "templates"

	// StrategyAgeRules отладочная генерация из возрастных правил академии
	// с предзаполнением слотов по недельному расписанию учеников
	StrategyAgeRules Strategy = "age_rules"
)

// Request запрос на генерацию слотов
type Request struct {
	SeasonID  string    `json:"-"`
	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
	Strategy  Strategy  `json:"strategy"`
	Force     bool      `json:"force"`
}

// Response результат генерации
type Response struct {
	SeasonID     string `json:"seasonId"`
	SlotsCreated int    `json:"slotsCreated"`
	SlotsDeleted int    `json:"slotsDeleted"`
}
