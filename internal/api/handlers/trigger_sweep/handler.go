package trigger_sweep

import (
	"net/http"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
)

// SweepResponse итог ручного запуска списания
type SweepResponse struct {
	SlotsProcessed int `json:"slotsProcessed"`
	SlotsFailed    int `json:"slotsFailed"`
	CreditsCharged int `json:"creditsCharged"`
}

type Handler struct {
	useCase SettleUseCase
	logger  Logger
}

func NewHandler(useCase SettleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sweep
//
// Синхронный запуск прохода списания, в обход фонового воркера.
// Используется операторами и интеграционными тестами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		SlotsProcessed: result.SlotsProcessed,
		SlotsFailed:    result.SlotsFailed,
		CreditsCharged: result.CreditsCharged,
	})
}
