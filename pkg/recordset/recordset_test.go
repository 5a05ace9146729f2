package recordset

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fila struct {
	Nombre string
	Estado string
	Fecha  time.Time
}

func sampleRows() []fila {
	return []fila{
		{Nombre: "Carlos Pérez", Estado: "pendiente", Fecha: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Nombre: "Ana Gómez", Estado: "aprobada", Fecha: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Nombre: "Beatriz Ruiz", Estado: "pendiente", Fecha: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)},
	}
}

func textFields(f fila) []string {
	return []string{f.Nombre, f.Estado}
}

func TestFilter_EmptyTermReturnsAll(t *testing.T) {
	rows := sampleRows()

	got := Filter(rows, "", textFields)

	require.Len(t, got, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i], got[i], "relative order must be preserved")
	}
}

func TestFilter_FreeText(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{name: "case insensitive substring", term: "gómez", expected: []string{"Ana Gómez"}},
		{name: "matches across fields", term: "PENDIENTE", expected: []string{"Carlos Pérez", "Beatriz Ruiz"}},
		{name: "no match", term: "zzz", expected: []string{}},
		{name: "whitespace only behaves as empty", term: "   ", expected: []string{"Carlos Pérez", "Ana Gómez", "Beatriz Ruiz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleRows(), tt.term, textFields)
			names := make([]string, 0, len(got))
			for _, f := range got {
				names = append(names, f.Nombre)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFilter_ColumnPredicates(t *testing.T) {
	rows := sampleRows()

	got := Filter(rows, "", textFields,
		FieldEquals("pendiente", func(f fila) string { return f.Estado }),
		FieldContains("ruiz", func(f fila) string { return f.Nombre }),
	)

	require.Len(t, got, 1)
	assert.Equal(t, "Beatriz Ruiz", got[0].Nombre)
}

func TestFilter_EmptyPredicateValueDisablesFilter(t *testing.T) {
	rows := sampleRows()

	got := Filter(rows, "", textFields,
		FieldEquals("", func(f fila) string { return f.Estado }),
	)

	assert.Len(t, got, len(rows))
}

func TestSortBy_DoesNotMutateSource(t *testing.T) {
	rows := sampleRows()
	original := sampleRows()

	_ = SortBy(rows, ByString(func(f fila) string { return f.Nombre }), Ascending)

	assert.Equal(t, original, rows)
}

func TestSortBy_StringAndTimeComparators(t *testing.T) {
	rows := sampleRows()

	byName := SortBy(rows, ByString(func(f fila) string { return f.Nombre }), Ascending)
	assert.Equal(t, "Ana Gómez", byName[0].Nombre)
	assert.Equal(t, "Carlos Pérez", byName[2].Nombre)

	byDate := SortBy(rows, ByTime(func(f fila) time.Time { return f.Fecha }), Descending)
	assert.Equal(t, "Carlos Pérez", byDate[0].Nombre)
	assert.Equal(t, "Ana Gómez", byDate[2].Nombre)
}

func TestSortState_ToggleCycle(t *testing.T) {
	var s SortState

	assert.Equal(t, Ascending, s.Toggle("fecha"))
	assert.Equal(t, Descending, s.Toggle("fecha"))
	assert.Equal(t, Ascending, s.Toggle("fecha"))

	// Clicking a different column resets to ascending even mid-cycle.
	assert.Equal(t, Descending, s.Toggle("fecha"))
	assert.Equal(t, Ascending, s.Toggle("nombre"))
	assert.Equal(t, "nombre", s.Key)
}

func TestDebouncer_OnlyTrailingCallRuns(t *testing.T) {
	var calls int32
	d := NewDebouncer(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
