package service

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/adjunto/dto"
	repo "github.com/andeshr/portalrh/internal/modules/adjunto/repository"
	"github.com/andeshr/portalrh/pkg/storage"
)

type AdjuntoService interface {
	SubirAdjunto(ctx context.Context, usuarioID *uuid.UUID, file *multipart.FileHeader) (*dto.SubirAdjuntoResponse, error)
	LimpiarHuerfanos(ctx context.Context) error
}

type adjuntoService struct {
	adjuntoRepo repo.AdjuntoRepository
	fileStorage storage.FileStorage
}

func NewAdjuntoService(adjuntoRepo repo.AdjuntoRepository, fileStorage storage.FileStorage) AdjuntoService {
	return &adjuntoService{
		adjuntoRepo: adjuntoRepo,
		fileStorage: fileStorage,
	}
}

func (s *adjuntoService) SubirAdjunto(ctx context.Context, usuarioID *uuid.UUID, file *multipart.FileHeader) (*dto.SubirAdjuntoResponse, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	url, err := s.fileStorage.Upload(ctx, f, "adjuntos", file.Filename)
	if err != nil {
		return nil, err
	}

	adjunto := &model.Adjunto{
		UsuarioID: usuarioID,
		FileURL:   url,
		FileType:  file.Header.Get("Content-Type"),
	}

	if err := s.adjuntoRepo.Create(ctx, adjunto); err != nil {
		return nil, err
	}

	return &dto.SubirAdjuntoResponse{
		ID:       adjunto.ID,
		FileURL:  adjunto.FileURL,
		FileType: adjunto.FileType,
	}, nil
}

// LimpiarHuerfanos removes uploads that never got attached to a parent
// record. Files younger than 24h are left alone so in-progress forms keep
// their uploads.
func (s *adjuntoService) LimpiarHuerfanos(ctx context.Context) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	huerfanos, err := s.adjuntoRepo.FindOrphans(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, huerfano := range huerfanos {
		if err := s.fileStorage.Delete(ctx, huerfano.FileURL); err != nil {
			log.Printf("Failed to delete orphan file %s: %v", huerfano.FileURL, err)
		}

		// If the DB delete fails the next run picks it up again.
		if err := s.adjuntoRepo.Delete(ctx, huerfano.ID); err != nil {
			log.Printf("Failed to delete orphan adjunto %d: %v", huerfano.ID, err)
		}
	}
	return nil
}
