package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	generateSlots "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest тело запроса на генерацию слотов
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Strategy  string `json:"strategy,omitempty"`
	Force     bool   `json:"force"`
}

// ToUseCaseRequest конвертирует HTTP-запрос в модель юзкейса
func (r GenerateSlotsRequest) ToUseCaseRequest(seasonID string) (generateSlots.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return generateSlots.Request{}, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return generateSlots.Request{}, fmt.Errorf("parse end date: %w", err)
	}
	return generateSlots.Request{
		SeasonID:  seasonID,
		StartDate: start,
		EndDate:   end,
		Strategy:  generateSlots.Strategy(r.Strategy),
		Force:     r.Force,
	}, nil
}
