package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
)

func comentarioPlano(id uuid.UUID, padre *uuid.UUID, contenido string) model.Comentario {
	return model.Comentario{ID: id, RespuestaA: padre, Contenido: contenido}
}

func TestArmarArbol_Empty(t *testing.T) {
	assert.Empty(t, ArmarArbol(nil))
	assert.Empty(t, ArmarArbol([]model.Comentario{}))
}

func TestArmarArbol_NestsRepliesUnderParent(t *testing.T) {
	raizA := uuid.New()
	raizB := uuid.New()
	hijo := uuid.New()
	nieto := uuid.New()

	arbol := ArmarArbol([]model.Comentario{
		comentarioPlano(raizB, nil, "segunda raíz"),
		comentarioPlano(nieto, &hijo, "nieto"),
		comentarioPlano(hijo, &raizA, "hijo"),
		comentarioPlano(raizA, nil, "primera raíz"),
	})

	require.Len(t, arbol, 2)
	// Roots keep the input's recency order.
	assert.Equal(t, raizB, arbol[0].Comentario.ID)
	assert.Equal(t, raizA, arbol[1].Comentario.ID)

	require.Len(t, arbol[1].Respuestas, 1)
	assert.Equal(t, hijo, arbol[1].Respuestas[0].Comentario.ID)
	require.Len(t, arbol[1].Respuestas[0].Respuestas, 1)
	assert.Equal(t, nieto, arbol[1].Respuestas[0].Respuestas[0].Comentario.ID)
}

func TestArmarArbol_MissingParentBecomesRoot(t *testing.T) {
	fantasma := uuid.New()
	huerfano := uuid.New()
	raiz := uuid.New()

	arbol := ArmarArbol([]model.Comentario{
		comentarioPlano(huerfano, &fantasma, "padre eliminado"),
		comentarioPlano(raiz, nil, "raíz normal"),
	})

	require.Len(t, arbol, 2, "orphan must surface as a root, not disappear")
	assert.Equal(t, huerfano, arbol[0].Comentario.ID)
	assert.Equal(t, raiz, arbol[1].Comentario.ID)
}

func TestArmarArbol_PreservesNodeCount(t *testing.T) {
	ids := make([]uuid.UUID, 12)
	for i := range ids {
		ids[i] = uuid.New()
	}
	comentarios := make([]model.Comentario, 0, len(ids))
	for i, id := range ids {
		var padre *uuid.UUID
		if i%3 != 0 {
			padre = &ids[i-1]
		}
		comentarios = append(comentarios, comentarioPlano(id, padre, "x"))
	}

	total := 0
	var contar func(nodos []*NodoComentario)
	contar = func(nodos []*NodoComentario) {
		for _, n := range nodos {
			total++
			contar(n.Respuestas)
		}
	}
	contar(ArmarArbol(comentarios))

	assert.Equal(t, len(comentarios), total)
}

func TestArmarArbol_SiblingOrderFollowsInput(t *testing.T) {
	raiz := uuid.New()
	r1 := uuid.New()
	r2 := uuid.New()
	r3 := uuid.New()

	arbol := ArmarArbol([]model.Comentario{
		comentarioPlano(raiz, nil, "raíz"),
		comentarioPlano(r1, &raiz, "primera respuesta"),
		comentarioPlano(r2, &raiz, "segunda respuesta"),
		comentarioPlano(r3, &raiz, "tercera respuesta"),
	})

	require.Len(t, arbol, 1)
	require.Len(t, arbol[0].Respuestas, 3)
	assert.Equal(t, r1, arbol[0].Respuestas[0].Comentario.ID)
	assert.Equal(t, r2, arbol[0].Respuestas[1].Comentario.ID)
	assert.Equal(t, r3, arbol[0].Respuestas[2].Comentario.ID)
}
