package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
)

// fakeNotificacionService records the paging the handler resolved from the
// query string.
type fakeNotificacionService struct {
	limit  int
	offset int
}

func (f *fakeNotificacionService) CrearNotificacion(_ context.Context, _ *model.Notificacion) error {
	return nil
}

func (f *fakeNotificacionService) GetNotificaciones(_ uuid.UUID, limit, offset int) ([]model.Notificacion, error) {
	f.limit = limit
	f.offset = offset
	return []model.Notificacion{}, nil
}

func (f *fakeNotificacionService) MarkAsRead(uuid.UUID) error        { return nil }
func (f *fakeNotificacionService) MarkAllAsRead(uuid.UUID) error     { return nil }
func (f *fakeNotificacionService) UnreadCount(uuid.UUID) (int64, error) { return 0, nil }

func getNotificaciones(t *testing.T, svc *fakeNotificacionService, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewNotificacionHandler(svc, nil, nil)
	router := gin.New()
	router.GET("/notificaciones", func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		h.GetNotificaciones(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notificaciones"+query, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetNotificaciones_Paginacion(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 20, wantOffset: 0},
		{name: "explicit paging", query: "?limit=5&offset=40", wantLimit: 5, wantOffset: 40},
		{name: "garbage falls back", query: "?limit=abc&offset=-3", wantLimit: 20, wantOffset: 0},
		{name: "limit capped", query: "?limit=5000", wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeNotificacionService{}
			w := getNotificaciones(t, svc, tt.query)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, svc.limit)
			assert.Equal(t, tt.wantOffset, svc.offset)
		})
	}
}
