package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/constant"
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/embedding"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService mengindeks dokumen yang selesai diproses ke knowledge base
// secara asinkron.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDocumentProcessedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // pesan rusak jangan diretry terus
		return
	}

	log.Printf("[INFO] Indexing document %s into knowledge base", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindByID(ctx, payload.DocumentId)
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // sudah dihapus, tidak ada yang bisa diindeks
		return
	}

	chunks := utils.SplitText(doc.TextContent, constant.ChunkSize, constant.ChunkOverlap)
	if len(chunks) == 0 {
		log.Printf("[WARN] Document %s has no indexable text", doc.FileName)
		msg.Ack()
		return
	}

	var newChunks []*entity.KnowledgeChunk
	for i, chunk := range chunks {
		values, err := cs.embeddingProvider.Generate(ctx, chunk, constant.EmbedTaskDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, doc.FileName, err)
			msg.Nack()
			return
		}
		newChunks = append(newChunks, &entity.KnowledgeChunk{
			Id:           uuid.New(),
			DocumentName: doc.FileName,
			Content:      chunk,
			Embedding:    values,
			CreatedAt:    time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-index: buang chunk lama dokumen ini dulu.
	if _, err := uow.KnowledgeChunkRepository().DeleteByDocumentName(ctx, doc.FileName); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks: %v", err)
		msg.Nack()
		return
	}

	if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, newChunks); err != nil {
		log.Printf("[ERROR] Failed to create bulk chunks: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document indexed: %d chunks for %s", len(newChunks), doc.FileName)
	msg.Ack()
}
