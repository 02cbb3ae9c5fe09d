package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docregistro/internal/generator"
	"docregistro/internal/logging"
	"docregistro/internal/model"
	"docregistro/internal/storage"
	"docregistro/internal/upload"
)

var (
	ErrReaderNil        = errors.New("reader is nil")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidID        = errors.New("invalid identifier")
)

// GeneratedListSize is how many synthetic records a request listing returns.
const GeneratedListSize = 5

var tracer = otel.Tracer("docregistro/internal/service")

// UploadKind selects the storage prefix of an upload.
type UploadKind string

const (
	KindDocument UploadKind = "documents"
	KindImage    UploadKind = "images"
)

// Entity names a deletable resource and the path parameter carrying its id.
type Entity struct {
	Name  string
	Param string
}

var (
	DocumentEntity = Entity{Name: "Document", Param: "documentId"}
	PhotoEntity    = Entity{Name: "Photo", Param: "photoId"}
)

// UploadRequest is a single file taken from a multipart form.
type UploadRequest struct {
	Kind         UploadKind
	Reader       io.Reader
	OriginalName string
	MediaType    string
	Size         int64
	// FixedName, when set, is returned instead of a generated file name.
	FixedName string
	// Fields are the non-file form values sent alongside the file. They are logged only.
	Fields map[string][]string
}

// UploadResult is what the client gets back for an accepted upload.
// FileID and FileName are synthetic and unrelated to File.StorageKey.
type UploadResult struct {
	FileID   string              `json:"fileId"`
	FileName string              `json:"fileName"`
	File     *model.UploadedFile `json:"-"`
}

// DocumentService defines the lifecycle operations over request documents and photos.
type DocumentService interface {
	// Upload runs the gatekeeper, names and stores the file, and returns synthetic identity.
	// A gatekeeper refusal is returned as *upload.Rejection and nothing is stored.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// ListRequestDocuments returns GeneratedListSize synthetic documents for a request.
	ListRequestDocuments(ctx context.Context, requestID string) ([]model.GeneratedDocument, error)

	// ListRequestPhotos returns GeneratedListSize synthetic photos for a request.
	ListRequestPhotos(ctx context.Context, requestID string) ([]model.GeneratedPhoto, error)

	// GetPhoto returns one synthetic photo; photoID is only checked for presence.
	GetPhoto(ctx context.Context, photoID string) (*model.GeneratedPhoto, error)

	// Delete validates id and returns the confirmation message. Nothing is removed.
	Delete(ctx context.Context, entity Entity, id string) (string, error)
}

type documentService struct {
	store storage.Storage
	gate  *upload.Gatekeeper
	namer *upload.Namer
	gen   generator.Generator
	log   *logging.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, gen generator.Generator, log *logging.Logger) DocumentService {
	if log == nil {
		log = logging.Default()
	}
	return &documentService{
		store: store,
		gate:  upload.NewGatekeeper(),
		namer: upload.NewNamer(),
		gen:   gen,
		log:   log,
	}
}

func (s *documentService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Upload", trace.WithAttributes(
		attribute.String("upload.kind", string(req.Kind)),
		attribute.String("upload.media_type", req.MediaType),
		attribute.Int64("upload.size", req.Size),
	))
	defer span.End()

	if rej := s.gate.Inspect(req.MediaType, req.Size); rej != nil {
		span.SetStatus(codes.Error, rej.Reason)
		s.log.Info("upload_rejected", map[string]any{
			"original_name": req.OriginalName,
			"media_type":    req.MediaType,
			"size":          req.Size,
			"reason":        rej.Reason,
		})
		return nil, rej
	}
	if req.Reader == nil {
		return nil, ErrReaderNil
	}

	key := s.namer.Key(string(req.Kind), req.OriginalName)
	info, err := s.store.Put(ctx, key, req.Reader, storage.PutObjectOptions{
		Size:        req.Size,
		ContentType: req.MediaType,
		Metadata: map[string]string{
			"original-filename": req.OriginalName,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage write failed")
		// The request context may already be cancelled; cleanup must still run.
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.log.Error("upload_cleanup_failed", map[string]any{
				"storage_key": key,
				"error":       delErr.Error(),
			})
			return nil, fmt.Errorf("upload to storage: %v; cleanup failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	file := &model.UploadedFile{
		OriginalName: req.OriginalName,
		MediaType:    req.MediaType,
		Size:         info.Size,
		StorageKey:   info.Key,
	}

	name := req.FixedName
	if name == "" {
		name = s.gen.FileName(filepath.Ext(req.OriginalName))
	}
	res := &UploadResult{
		FileID:   s.gen.ID(),
		FileName: name,
		File:     file,
	}

	s.log.Info("upload_accepted", map[string]any{
		"original_name": file.OriginalName,
		"media_type":    file.MediaType,
		"size":          file.Size,
		"storage_key":   file.StorageKey,
		"file_id":       res.FileID,
		"form_fields":   fieldNames(req.Fields),
	})
	span.SetAttributes(attribute.String("upload.storage_key", file.StorageKey))
	return res, nil
}

func (s *documentService) ListRequestDocuments(ctx context.Context, requestID string) ([]model.GeneratedDocument, error) {
	if requestID == "" {
		return nil, ErrMissingParameter
	}
	out := make([]model.GeneratedDocument, 0, GeneratedListSize)
	for range GeneratedListSize {
		out = append(out, model.GeneratedDocument{
			DocumentID:   s.gen.ID(),
			DocumentName: s.gen.FileName(".pdf"),
		})
	}
	return out, nil
}

func (s *documentService) ListRequestPhotos(ctx context.Context, requestID string) ([]model.GeneratedPhoto, error) {
	if requestID == "" {
		return nil, ErrMissingParameter
	}
	out := make([]model.GeneratedPhoto, 0, GeneratedListSize)
	for range GeneratedListSize {
		out = append(out, s.photo())
	}
	return out, nil
}

func (s *documentService) GetPhoto(ctx context.Context, photoID string) (*model.GeneratedPhoto, error) {
	if photoID == "" {
		return nil, ErrMissingParameter
	}
	p := s.photo()
	return &p, nil
}

func (s *documentService) Delete(ctx context.Context, entity Entity, id string) (string, error) {
	if id == "" || !isValidID(id) {
		return "", ErrInvalidID
	}
	s.log.Info("delete_requested", map[string]any{
		"entity": entity.Name,
		"id":     id,
	})
	return fmt.Sprintf("%s with ID %s has been deleted", entity.Name, id), nil
}

func (s *documentService) photo() model.GeneratedPhoto {
	return model.GeneratedPhoto{
		PhotoID:   s.gen.ID(),
		PhotoName: s.gen.FileName(".jpg"),
	}
}

// isValidID accepts every non-empty id.
// TODO: check the id format once documents are persisted.
func isValidID(id string) bool {
	return true
}

func fieldNames(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
