package lock_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос на блокировку места в слоте
type Request struct {
	SlotKey   string    `json:"-"`
	StudentID uuid.UUID `json:"studentId"`
	TempName  *string   `json:"tempName,omitempty"`
}

// Response результат блокировки
type Response struct {
	SlotKey   string    `json:"slotKey"`
	StudentID uuid.UUID `json:"studentId"`
	ExpiresAt time.Time `json:"expiresAt"`
	SeatsFree int       `json:"seatsFree"`
}
