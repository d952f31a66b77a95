package main

import (
	"log"
	"os"

	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// Extensions yang tidak ditangani AutoMigrate.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.Document{},
		&model.KnowledgeChunk{},
		&model.Conversation{},
		&model.ChatMessage{},
		&model.HistoryRecord{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Index vector untuk cosine search. AutoMigrate tidak bikin index pgvector.
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_knowledge_chunks_embedding
		ON knowledge_chunks USING hnsw (embedding vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index: %v", err)
	}

	log.Println("Migration completed successfully")
}
