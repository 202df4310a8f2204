package laundry

import "github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"

// ===============================
// Validation
// ===============================

var (
	ErrInvalidDuration = httperr.New(httperr.ErrValidation,
		"invalid_duration", "A duração não pode ser negativa.")
	ErrInvalidPhone = httperr.New(httperr.ErrValidation,
		"invalid_phone", "São aceitos somente dígitos. De 9 a 15 caracteres.")
	ErrInvalidEmail = httperr.New(httperr.ErrValidation,
		"invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
	ErrPasswordRequired = httperr.New(httperr.ErrValidation,
		"password_required", "Senha obrigatória.")
	ErrInvalidDateTime = httperr.New(httperr.ErrValidation,
		"invalid_date_or_time", "Data ou horário inválido.")
	ErrInvalidRequest = httperr.New(httperr.ErrValidation,
		"invalid_request", "Requisição inválida.")
)

// ===============================
// Conflicts
// ===============================

var (
	ErrSlotOverlap = httperr.New(httperr.ErrConflict,
		"slot_overlap", "Já existe um slot para essa lavadora no período selecionado.")
	ErrSlotUnavailable = httperr.New(httperr.ErrConflict,
		"slot_unavailable", "Este horário já foi reservado.")
	ErrBookingInProgress = httperr.New(httperr.ErrConflict,
		"booking_in_progress", "Outro agendamento seu está sendo processado. Tente novamente.")
	ErrUsernameTaken = httperr.New(httperr.ErrConflict,
		"username_taken", "Nome de usuário já cadastrado.")
)

// ===============================
// Policy violations
// ===============================

var (
	ErrTooFarInAdvance = httperr.New(httperr.ErrPolicyViolation,
		"too_far_in_advance", "Este horário ainda não está aberto para agendamento.")
	ErrTooManyAbsences = httperr.New(httperr.ErrPolicyViolation,
		"too_many_absences", "Você faltou a agendamentos recentes e está temporariamente bloqueado.")
	ErrTooManyActiveReservations = httperr.New(httperr.ErrPolicyViolation,
		"too_many_active_reservations", "Você já possui o número máximo de agendamentos ativos.")
	ErrPastReservation = httperr.New(httperr.ErrPolicyViolation,
		"past_reservation", "Não é possível cancelar um agendamento que já passou.")
	ErrPresenceInFuture = httperr.New(httperr.ErrPolicyViolation,
		"presence_in_future", "Não é possível registrar falta antes do início do horário.")
)

// ===============================
// Access / lookup
// ===============================

var (
	ErrForbidden = httperr.New(httperr.ErrForbidden,
		"forbidden", "Acesso restrito a bolsistas.")

	ErrUserNotFound = httperr.New(httperr.ErrNotFound,
		"user_not_found", "Usuário não encontrado.")
	ErrWasherNotFound = httperr.New(httperr.ErrNotFound,
		"washer_not_found", "Lavadora não encontrada.")
	ErrSlotNotFound = httperr.New(httperr.ErrNotFound,
		"slot_not_found", "Horário não encontrado.")
	ErrReservationNotFound = httperr.New(httperr.ErrNotFound,
		"reservation_not_found", "Agendamento não encontrado.")
)
