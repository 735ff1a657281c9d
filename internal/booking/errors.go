package booking

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
)

// Error codes carried by FieldError.  Messages are looked up from codes so
// they can be localized without touching the rules.
const (
	CodeNameLength    = "name_length"
	CodeInvalidRoom   = "invalid_room"
	CodeInvalidDate   = "invalid_date"
	CodeDateInPast    = "date_in_past"
	CodeTimeFormat    = "time_format"
	CodeBusinessHours = "business_hours"
	CodeTimeStep      = "time_step"
	CodeIntervalOrder = "interval_order"
)

var messages = map[string]string{
	CodeNameLength:    "Nome deve ter entre 2 e 100 caracteres",
	CodeInvalidRoom:   "Sala inválida",
	CodeInvalidDate:   "Data inválida",
	CodeDateInPast:    "Não é possível agendar em datas passadas",
	CodeTimeFormat:    "Formato de hora inválido (HH:mm)",
	CodeBusinessHours: "Horário deve estar entre 08:00 e 22:00",
	CodeTimeStep:      "Horário deve ser em intervalos de 30 minutos",
	CodeIntervalOrder: "Horário de início deve ser anterior ao horário de fim",
}

// validator tag -> error code
var tagCodes = map[string]string{
	"min":            CodeNameLength,
	"max":            CodeNameLength,
	"room":           CodeInvalidRoom,
	"required":       CodeInvalidDate,
	"local_date":     CodeInvalidDate,
	"not_past":       CodeDateInPast,
	"clock":          CodeTimeFormat,
	"business_hours": CodeBusinessHours,
	"half_hour":      CodeTimeStep,
	"interval":       CodeIntervalOrder,
}

// FieldError is one user-correctable problem with a booking input.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ShapeError collects every FieldError found in one input.
type ShapeError struct {
	Fields []FieldError
}

func (e *ShapeError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Code
	}
	return "invalid booking: " + strings.Join(parts, ", ")
}

// Has reports whether a problem with code was recorded on field.
func (e *ShapeError) Has(field, code string) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Code == code {
			return true
		}
	}
	return false
}

func newShapeError(verrs validator.ValidationErrors) *ShapeError {
	out := &ShapeError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		code, ok := tagCodes[fe.Tag()]
		if !ok {
			code = fe.Tag()
		}
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Code:    code,
			Message: messages[code],
		})
	}
	return out
}

// Conflict is the existing booking a candidate collides with.  It is an
// expected outcome, returned rather than raised, and satisfies error so
// storage layers can hand it back through their error path.
type Conflict struct {
	Existing  model.Booking
	StartTime string
	EndTime   string
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("Conflito de horário: já existe um agendamento das %s às %s", c.StartTime, c.EndTime)
}
