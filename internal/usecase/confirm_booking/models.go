package confirm_booking

import "github.com/google/uuid"

// SlotData данные для создания виртуального слота: используются, когда
// подтверждается запись в слот, которого ещё нет в хранилище
type SlotData struct {
	Capacity   int     `json:"capacity"`
	SeasonID   *string `json:"seasonId,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
}

// Request запрос на подтверждение записи
type Request struct {
	SlotKey   string    `json:"-"`
	StudentID uuid.UUID `json:"studentId"`
	SlotData  *SlotData `json:"slotData,omitempty"`
}

// Response результат подтверждения
type Response struct {
	SlotKey     string    `json:"slotKey"`
	StudentID   uuid.UUID `json:"studentId"`
	SeatsTaken  int       `json:"seatsTaken"`
	SeatsFree   int       `json:"seatsFree"`
	SlotCreated bool      `json:"slotCreated"`
}
