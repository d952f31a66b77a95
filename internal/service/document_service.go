package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/constant"
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/logger"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/embedding"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/events"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/extract"
	pktNats "github.com/Nix128/asisten-pengawasan-apip/pkg/nats"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/storage"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/utils"

	"github.com/google/uuid"
)

type IDocumentService interface {
	UploadFile(ctx context.Context, documentName, contentType string, reader io.Reader) (*dto.UploadDocumentResponse, error)
	IngestContent(ctx context.Context, documentName, content string) (*dto.UploadDocumentResponse, error)
	SignedUploadURL(ctx context.Context, req *dto.SignedUploadURLRequest) (*dto.SignedUploadURLResponse, error)
	UploadObject(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (*dto.UploadObjectResponse, error)
	Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.DocumentItem, error)
	List(ctx context.Context) ([]dto.DocumentItem, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (*dto.DownloadURLResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	objectStorage     storage.ObjectStore
	extractor         *extract.Extractor
	embeddingProvider embedding.Provider
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	uploadURLExpiry   time.Duration
	log               logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	objectStorage storage.ObjectStore,
	extractor *extract.Extractor,
	embeddingProvider embedding.Provider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	uploadURLExpiry time.Duration,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		objectStorage:     objectStorage,
		extractor:         extractor,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		uploadURLExpiry:   uploadURLExpiry,
		log:               log,
	}
}

// UploadFile adalah jalur upload langsung ke knowledge base. Jalur ini ketat:
// MIME di luar whitelist ditolak 400, beda dengan jalur Process yang toleran.
func (s *documentService) UploadFile(ctx context.Context, documentName, contentType string, reader io.Reader) (*dto.UploadDocumentResponse, error) {
	if !extract.Supported(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	text, err := s.extractor.Extract(ctx, reader, contentType)
	if err != nil {
		return nil, err
	}

	return s.IngestContent(ctx, documentName, text)
}

// IngestContent memotong teks jadi chunk, membuat embedding per chunk, lalu
// menyimpan batch demi batch. Kegagalan di tengah menghentikan batch sisanya
// tanpa membatalkan batch yang sudah masuk.
func (s *documentService) IngestContent(ctx context.Context, documentName, content string) (*dto.UploadDocumentResponse, error) {
	chunks := utils.SplitText(content, constant.ChunkSize, constant.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}

	newChunks := make([]*entity.KnowledgeChunk, 0, len(chunks))
	for i, chunk := range chunks {
		values, err := s.embeddingProvider.Generate(ctx, chunk, constant.EmbedTaskDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %s: %w", i, documentName, err)
		}
		newChunks = append(newChunks, &entity.KnowledgeChunk{
			Id:           uuid.New(),
			DocumentName: documentName,
			Content:      chunk,
			Embedding:    values,
			CreatedAt:    time.Now(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	inserted := 0
	for start := 0; start < len(newChunks); start += constant.EmbedBatchSize {
		end := start + constant.EmbedBatchSize
		if end > len(newChunks) {
			end = len(newChunks)
		}
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, newChunks[start:end]); err != nil {
			s.log.Error("document", "Bulk insert failed, aborting remaining batches", map[string]interface{}{
				"document_name": documentName,
				"inserted":      inserted,
				"error":         err.Error(),
			})
			return nil, err
		}
		inserted = end
	}

	s.log.Info("document", "Document ingested into knowledge base", map[string]interface{}{
		"document_name": documentName,
		"chunk_count":   inserted,
	})

	return &dto.UploadDocumentResponse{
		DocumentName: documentName,
		ChunkCount:   inserted,
	}, nil
}

func (s *documentService) SignedUploadURL(ctx context.Context, req *dto.SignedUploadURLRequest) (*dto.SignedUploadURLResponse, error) {
	objectPath := fmt.Sprintf("public/%d_%s", time.Now().UnixMilli(), req.FileName)

	signedURL, err := s.objectStorage.PresignedPutURL(ctx, objectPath, s.uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.SignedUploadURLResponse{
		SignedUrl: signedURL,
		Path:      objectPath,
	}, nil
}

// UploadObject menyimpan file ke object storage lewat API server, sebagai
// fallback ketika client tidak bisa memakai presigned URL.
func (s *documentService) UploadObject(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (*dto.UploadObjectResponse, error) {
	objectPath := fmt.Sprintf("public/%d_%s", time.Now().UnixMilli(), fileName)

	if err := s.objectStorage.Upload(ctx, objectPath, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectPath, err)
	}

	return &dto.UploadObjectResponse{Path: objectPath}, nil
}

// Process mengekstrak file yang sudah diupload ke object storage dan mencatat
// dokumennya. Kegagalan download adalah error upstream; hanya kegagalan
// ekstraksi yang toleran (disimpan dengan teks placeholder).
func (s *documentService) Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.DocumentItem, error) {
	object, err := s.objectStorage.Download(ctx, req.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", req.StoragePath, err)
	}
	defer object.Close()

	text, err := s.extractor.Extract(ctx, object, req.FileType)
	if err != nil {
		s.log.Warn("document", "Extraction failed, storing placeholder text", map[string]interface{}{
			"file_name": req.FileName,
			"file_type": req.FileType,
			"error":     err.Error(),
		})
		text = fmt.Sprintf("(Konten file %s tidak dapat diekstrak otomatis. Tipe: %s)", req.FileName, req.FileType)
	}

	doc := &entity.Document{
		Id:          uuid.New(),
		FileName:    req.FileName,
		FileType:    req.FileType,
		StoragePath: req.StoragePath,
		TextContent: text,
		SessionId:   req.SessionId,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	// Indexing ke knowledge base berjalan async lewat consumer.
	msgPayload := dto.PublishDocumentProcessedMessage{DocumentId: doc.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.log.Warn("document", "Failed to publish DOCUMENT_PROCESSED message", map[string]interface{}{"error": err.Error()})
	}

	return &dto.DocumentItem{
		Id:        doc.Id,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		SessionId: doc.SessionId,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context) ([]dto.DocumentItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DocumentItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, dto.DocumentItem{
			Id:        doc.Id,
			FileName:  doc.FileName,
			FileType:  doc.FileType,
			SessionId: doc.SessionId,
			CreatedAt: doc.CreatedAt,
		})
	}
	return items, nil
}

// DownloadURL memberi presigned GET untuk mengunduh file asli sebuah dokumen.
func (s *documentService) DownloadURL(ctx context.Context, id uuid.UUID) (*dto.DownloadURLResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.StoragePath == "" {
		return nil, ErrNotFound
	}

	signedURL, err := s.objectStorage.PresignedGetURL(ctx, doc.StoragePath, s.uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadURLResponse{
		SignedUrl: signedURL,
		FileName:  doc.FileName,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}

	// Objek storage dihapus dulu; gagal hapus objek tidak memblokir hapus
	// metadata.
	if doc.StoragePath != "" {
		if err := s.objectStorage.Remove(ctx, doc.StoragePath); err != nil {
			s.log.Warn("document", "Failed to remove storage object", map[string]interface{}{
				"storage_path": doc.StoragePath,
				"error":        err.Error(),
			})
		}
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := events.NewAuditEvent(events.EventDocumentDeleted, map[string]interface{}{
			"document_id": doc.Id,
			"file_name":   doc.FileName,
			"time":        time.Now().Format(time.RFC822),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("document", "Failed to publish DOCUMENT_DELETED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}
