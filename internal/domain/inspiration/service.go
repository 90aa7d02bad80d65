package inspiration

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
	"github.com/yanqian/diveplanner/pkg/util"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Service generates inspiration images and stores sketches.
type Service interface {
	Generate(ctx context.Context, req ImageRequest) (ImageResponse, error)
	SaveSketch(ctx context.Context, data []byte) (Sketch, error)
	LoadSketch(ctx context.Context, id string) ([]byte, error)
	DeleteSketch(ctx context.Context, id string) error
}

type service struct {
	cfg    Config
	images llm.ImageGenerator
	blobs  BlobStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the inspiration domain.
func NewService(cfg Config, images llm.ImageGenerator, blobs BlobStore, logger *slog.Logger) Service {
	if cfg.DefaultAspectRatio == "" {
		cfg.DefaultAspectRatio = "16:9"
	}
	if cfg.SketchMaxBytes <= 0 {
		cfg.SketchMaxBytes = 5 << 20
	}
	return &service{
		cfg:    cfg,
		images: images,
		blobs:  blobs,
		logger: logger.With("component", "inspiration.service"),
		now:    util.NowUTC,
		newID:  uuid.NewString,
	}
}

func (s *service) Generate(ctx context.Context, req ImageRequest) (ImageResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return ImageResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "El prompt no puede estar vacío.", nil)
	}
	ratio := strings.TrimSpace(req.AspectRatio)
	if ratio == "" {
		ratio = s.cfg.DefaultAspectRatio
	}
	if !slices.Contains(AspectRatios, ratio) {
		return ImageResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("relación de aspecto no soportada: %q", ratio), nil)
	}

	result, err := s.images.GenerateImage(ctx, llm.ImageRequest{Prompt: prompt, AspectRatio: ratio, MIMEType: imageMIMEType})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLLMUnavailable) {
			return ImageResponse{}, err
		}
		return ImageResponse{}, apperrors.Wrap(apperrors.CodeLLM, "No se pudo generar la imagen. Por favor, inténtelo de nuevo.", err)
	}
	if len(result.Bytes) == 0 {
		return ImageResponse{}, apperrors.Wrap(apperrors.CodeLLM, "No se pudo generar la imagen: La API no devolvió una imagen.", nil)
	}
	mimeType := result.MIMEType
	if mimeType == "" {
		mimeType = imageMIMEType
	}

	res := ImageResponse{
		DataURL:     "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(result.Bytes),
		MIMEType:    mimeType,
		AspectRatio: ratio,
	}
	if s.cfg.ArchiveImages {
		key := fmt.Sprintf("images/%s%s", s.newID(), extensionFor(mimeType))
		if _, err := s.blobs.Put(ctx, key, result.Bytes, mimeType); err != nil {
			s.logger.Warn("inspiration image archive failed", "key", key, "error", err)
		} else {
			res.Key = key
		}
	}
	s.logger.Info("inspiration image generated", "aspect_ratio", ratio, "bytes", len(result.Bytes))
	return res, nil
}

func (s *service) SaveSketch(ctx context.Context, data []byte) (Sketch, error) {
	if len(data) == 0 {
		return Sketch{}, apperrors.Wrap(apperrors.CodeInvalidInput, "el boceto está vacío", nil)
	}
	if int64(len(data)) > s.cfg.SketchMaxBytes {
		return Sketch{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("el boceto supera el máximo de %d bytes", s.cfg.SketchMaxBytes), nil)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		return Sketch{}, apperrors.Wrap(apperrors.CodeInvalidInput, "el boceto debe ser una imagen PNG", nil)
	}
	id := s.newID()
	obj, err := s.blobs.Put(ctx, sketchKey(id), data, "image/png")
	if err != nil {
		return Sketch{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store sketch", err)
	}
	s.logger.Info("sketch stored", "id", id, "bytes", obj.Size)
	return Sketch{
		ID:        id,
		Key:       obj.Key,
		Size:      obj.Size,
		MIMEType:  "image/png",
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *service) LoadSketch(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "sketch not found", nil)
	}
	rc, err := s.blobs.Get(ctx, sketchKey(id))
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, "sketch not found", nil)
		}
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load sketch", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to read sketch", err)
	}
	return data, nil
}

func (s *service) DeleteSketch(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Wrap(apperrors.CodeNotFound, "sketch not found", nil)
	}
	if err := s.blobs.Delete(ctx, sketchKey(id)); err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "sketch not found", nil)
		}
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete sketch", err)
	}
	return nil
}

func sketchKey(id string) string {
	return "sketches/" + id + ".png"
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
