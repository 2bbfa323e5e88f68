package get_student_bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetStudentBookings(ctx context.Context, studentID uuid.UUID, from, to time.Time) (*models.StudentBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
