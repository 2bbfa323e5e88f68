package lock_slot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

func validateRequest(req Request) (domain.SlotKey, error) {
	key, err := domain.ParseSlotKey(req.SlotKey)
	if err != nil {
		return domain.SlotKey{}, fmt.Errorf("%w: slot key %q", ErrInvalidInput, req.SlotKey)
	}
	if req.StudentID == uuid.Nil {
		return domain.SlotKey{}, fmt.Errorf("%w: student id is required", ErrInvalidInput)
	}
	return key, nil
}
