package domain

import "time"

// CreatedAtFormat формат момента допуска бронирования в отчетах
const CreatedAtFormat = "2006-01-02 15:04:05"

// Ограничения на текстовые поля заявки
const (
	MaxTeacherNameLength = 100
	MaxClassNameLength   = 50
	MaxContactLength     = 30
	MaxSubjectLength     = 100
)

// Исходы обработки заявки (метка метрики booking_outcomes_total)
const (
	OutcomeAdmitted           = "admitted"
	OutcomePastDate           = "past_date"
	OutcomeSlotConflict       = "slot_conflict"
	OutcomeUnknownPeriod      = "unknown_period"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeStorageUnavailable = "storage_unavailable"
	OutcomeDuplicateID        = "duplicate_id"
	OutcomeInternalError      = "internal_error"
)

// Weekdays названия дней недели для фильтра отчета (регистр важен)
var Weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}
