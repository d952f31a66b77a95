package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/contract"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/genai"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/websearch"

	"github.com/google/uuid"
)

// Fake in-memory repositories supaya service bisa diuji tanpa database.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeUserRepo struct {
	user *entity.User
	err  error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return f.err }
func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, f.err
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.user, f.err
}

type fakeDocumentRepo struct {
	docs    []*entity.Document
	created []*entity.Document
	err     error
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, doc)
	return nil
}
func (f *fakeDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	for _, doc := range f.docs {
		if doc.Id == id {
			return doc, nil
		}
	}
	return nil, f.err
}
func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return f.docs, f.err
}
func (f *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error { return f.err }
func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error         { return f.err }

type fakeKnowledgeChunkRepo struct {
	chunks        []*entity.KnowledgeChunk
	chunksByDoc   map[string][]*entity.KnowledgeChunk
	scored        []*contract.ScoredKnowledgeChunk
	createdBulk   [][]*entity.KnowledgeChunk
	deletedByDoc  []string
	deleteByDocN  int64
	documentNames []string
	err           error
}

func (f *fakeKnowledgeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if f.err != nil {
		return f.err
	}
	f.createdBulk = append(f.createdBulk, chunks)
	return nil
}
func (f *fakeKnowledgeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, spec := range specs {
		if byName, ok := spec.(specification.ByDocumentName); ok && f.chunksByDoc != nil {
			return f.chunksByDoc[byName.DocumentName], nil
		}
	}
	return f.chunks, nil
}
func (f *fakeKnowledgeChunkRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.KnowledgeChunk, error) {
	for _, chunk := range f.chunks {
		if chunk.Id == id {
			return chunk, nil
		}
	}
	return nil, f.err
}
func (f *fakeKnowledgeChunkRepo) Update(ctx context.Context, chunk *entity.KnowledgeChunk) error {
	return f.err
}
func (f *fakeKnowledgeChunkRepo) Delete(ctx context.Context, id uuid.UUID) error { return f.err }
func (f *fakeKnowledgeChunkRepo) DeleteByDocumentName(ctx context.Context, documentName string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deletedByDoc = append(f.deletedByDoc, documentName)
	return f.deleteByDocN, nil
}
func (f *fakeKnowledgeChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	return f.scored, f.err
}
func (f *fakeKnowledgeChunkRepo) ListDocumentNames(ctx context.Context) ([]string, error) {
	return f.documentNames, f.err
}

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	err           error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[string]*entity.Conversation)}
}

func (f *fakeConversationRepo) Upsert(ctx context.Context, conversation *entity.Conversation) error {
	if f.err != nil {
		return f.err
	}
	// DO NOTHING saat session sudah ada: judul pertama menang.
	if _, exists := f.conversations[conversation.SessionId]; !exists {
		f.conversations[conversation.SessionId] = conversation
	}
	return nil
}
func (f *fakeConversationRepo) FindBySessionID(ctx context.Context, sessionID string) (*entity.Conversation, error) {
	return f.conversations[sessionID], f.err
}
func (f *fakeConversationRepo) FindAll(ctx context.Context) ([]*entity.Conversation, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entity.Conversation, 0, len(f.conversations))
	for _, conv := range f.conversations {
		out = append(out, conv)
	}
	return out, nil
}

type fakeChatMessageRepo struct {
	messages []*entity.ChatMessage
	err      error
}

func (f *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}
func (f *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

type fakeHistoryRecordRepo struct {
	records []*entity.HistoryRecord
	err     error
}

func (f *fakeHistoryRecordRepo) Create(ctx context.Context, record *entity.HistoryRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}
func (f *fakeHistoryRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.HistoryRecord, error) {
	for _, record := range f.records {
		if record.Id == id {
			return record, nil
		}
	}
	return nil, f.err
}
func (f *fakeHistoryRecordRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryRecord, error) {
	return f.records, f.err
}
func (f *fakeHistoryRecordRepo) Update(ctx context.Context, record *entity.HistoryRecord) error {
	return f.err
}
func (f *fakeHistoryRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i, record := range f.records {
		if record.Id == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUnitOfWork struct {
	users         *fakeUserRepo
	documents     *fakeDocumentRepo
	chunks        *fakeKnowledgeChunkRepo
	conversations *fakeConversationRepo
	messages      *fakeChatMessageRepo
	history       *fakeHistoryRecordRepo

	beginCount    int
	commitCount   int
	rollbackCount int
	beginErr      error
	commitErr     error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:         &fakeUserRepo{},
		documents:     &fakeDocumentRepo{},
		chunks:        &fakeKnowledgeChunkRepo{},
		conversations: newFakeConversationRepo(),
		messages:      &fakeChatMessageRepo{},
		history:       &fakeHistoryRecordRepo{},
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error {
	f.beginCount++
	return f.beginErr
}
func (f *fakeUnitOfWork) Commit() error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commitCount++
	return nil
}
func (f *fakeUnitOfWork) Rollback() error {
	f.rollbackCount++
	return nil
}

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository               { return f.users }
func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository       { return f.documents }
func (f *fakeUnitOfWork) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return f.chunks
}
func (f *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return f.conversations
}
func (f *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return f.messages }
func (f *fakeUnitOfWork) HistoryRecordRepository() contract.HistoryRecordRepository {
	return f.history
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeGenerator memutar daftar respons berurutan untuk GenerateContent dan
// merekam setiap request yang masuk.
type fakeGenerator struct {
	responses []*genai.Content
	errs      []error
	callIdx   int
	requests  []*genai.GenerateContentRequest

	textResponse string
	textErr      error
	textPrompts  []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *genai.GenerateContentRequest) (*genai.Content, error) {
	f.requests = append(f.requests, req)
	idx := f.callIdx
	f.callIdx++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx >= len(f.responses) {
		return nil, errors.New("fakeGenerator: no scripted response")
	}
	return f.responses[idx], nil
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.textPrompts = append(f.textPrompts, prompt)
	return f.textResponse, f.textErr
}

type fakeSearcher struct {
	results []websearch.Result
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]websearch.Result, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

// fakeObjectStore menyimpan objek di memori. Download objek yang tidak ada
// gagal eksplisit, meniru kontrak ObjectStorage.Download setelah Stat.
type fakeObjectStore struct {
	objects     map[string][]byte
	uploads     []string
	removed     []string
	downloadErr error
	uploadErr   error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[objectName] = raw
	f.uploads = append(f.uploads, objectName)
	return nil
}

func (f *fakeObjectStore) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	raw, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found: " + objectName)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (f *fakeObjectStore) Remove(ctx context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	delete(f.objects, objectName)
	return nil
}

func (f *fakeObjectStore) PresignedPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.test/put/" + objectName, nil
}

func (f *fakeObjectStore) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.test/get/" + objectName, nil
}

type fakePublisherService struct {
	published [][]byte
	err       error
}

func (f *fakePublisherService) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

type fakeEmbeddingProvider struct {
	vector []float32
	err    error
	texts  []string
}

func (f *fakeEmbeddingProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.texts = append(f.texts, text)
	return f.vector, f.err
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{Role: role, Parts: []genai.Part{{Text: text}}}
}

func toolCallContent(name string, args map[string]interface{}) *genai.Content {
	return &genai.Content{
		Role:  genai.RoleModel,
		Parts: []genai.Part{{FunctionCall: &genai.FunctionCall{Name: name, Args: args}}},
	}
}
