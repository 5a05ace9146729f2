package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s debe tener máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser máximo %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s debe ser una fecha válida (YYYY-MM-DD)", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Correo":      "Correo electrónico",
		"Password":    "Contraseña",
		"Nombre":      "Nombre",
		"Titulo":      "Título",
		"Contenido":   "Contenido",
		"FechaInicio": "Fecha de inicio",
		"FechaFin":    "Fecha de fin",
		"Motivo":      "Motivo",
		"Diagnostico": "Diagnóstico",
		"DirigidoA":   "Dirigido a",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
