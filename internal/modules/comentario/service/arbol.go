package service

import (
	"github.com/andeshr/portalrh/internal/model"
	"github.com/google/uuid"
)

// NodoComentario is one node of the reply forest built fresh on every fetch.
type NodoComentario struct {
	Comentario model.Comentario
	Respuestas []*NodoComentario
}

// ArmarArbol converts the flat, newest-first comment list of one thread into
// a forest of reply trees, preserving the input's recency order. A comment
// whose parent is not in the list becomes a root (filtered or deleted
// upstream); that fallback keeps the node count equal to the input length.
// Cycles cannot occur because a parent must exist before its reply.
func ArmarArbol(comentarios []model.Comentario) []*NodoComentario {
	nodos := make(map[uuid.UUID]*NodoComentario, len(comentarios))
	for i := range comentarios {
		nodos[comentarios[i].ID] = &NodoComentario{Comentario: comentarios[i]}
	}

	var raices []*NodoComentario
	for i := range comentarios {
		nodo := nodos[comentarios[i].ID]
		padre := comentarios[i].RespuestaA
		if padre != nil {
			if padreNodo, ok := nodos[*padre]; ok {
				padreNodo.Respuestas = append(padreNodo.Respuestas, nodo)
				continue
			}
		}
		raices = append(raices, nodo)
	}

	return raices
}
