package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andeshr/portalrh/internal/model"
)

func TestTransicionValida(t *testing.T) {
	tests := []struct {
		name  string
		desde string
		hacia string
		ok    bool
	}{
		{name: "radicada a en_revision", desde: model.EstadoRadicada, hacia: model.EstadoEnRevision, ok: true},
		{name: "radicada directo a aprobada", desde: model.EstadoRadicada, hacia: model.EstadoAprobada, ok: true},
		{name: "radicada directo a rechazada", desde: model.EstadoRadicada, hacia: model.EstadoRechazada, ok: true},
		{name: "en_revision a aprobada", desde: model.EstadoEnRevision, hacia: model.EstadoAprobada, ok: true},
		{name: "en_revision a rechazada", desde: model.EstadoEnRevision, hacia: model.EstadoRechazada, ok: true},
		{name: "aprobada es terminal", desde: model.EstadoAprobada, hacia: model.EstadoRechazada, ok: false},
		{name: "rechazada es terminal", desde: model.EstadoRechazada, hacia: model.EstadoAprobada, ok: false},
		{name: "no se regresa a radicada", desde: model.EstadoEnRevision, hacia: model.EstadoRadicada, ok: false},
		{name: "estado desconocido", desde: "archivada", hacia: model.EstadoAprobada, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, transicionValida(tt.desde, tt.hacia))
		})
	}
}
