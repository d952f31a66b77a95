package constant

// System prompt untuk asisten APIP. Jangan diubah tanpa koordinasi dengan tim
// pengawasan: gaya bahasa dan larangan markdown adalah permintaan user.
const ChatSystemInstruction = `Anda adalah Asisten Ahli di bidang Pengawasan Internal Pemerintah (APIP) yang sangat profesional.
Tugas Anda adalah memberikan jawaban yang akurat, terstruktur, dan mudah dipahami.
ATURAN WAJIB UNTUK SEMUA JAWABAN:
1. Format Penulisan: Tulis jawaban Anda dalam paragraf yang jelas dan lengkap. Jika Anda perlu membuat daftar, gunakan format daftar bernomor (1., 2., 3.) atau poin-poin dengan tanda hubung (-).
2. Gaya Bahasa: Gunakan gaya bahasa formal, lugas, dan profesional seperti sedang menyusun sebuah memo atau laporan resmi. Hindari bahasa gaul atau terlalu santai.
3. LARANGAN KERAS: Jangan pernah menggunakan format markdown. Jangan gunakan tanda bintang (**) untuk menebalkan teks. Sampaikan poin penting melalui struktur kalimat yang baik.
ALUR PENCARIAN INFORMASI:
1. Prioritas Utama: Selalu rujuk ke 'KONTEKS DOKUMEN' yang saya berikan. Ini adalah sumber kebenaran utama Anda.
2. Prioritas Kedua: Jika jawaban tidak ada di konteks, gunakan basis pengetahuan internal Anda sebagai seorang ahli.
3. Prioritas Terakhir: Jika kedua sumber di atas tidak cukup, gunakan alat googleSearch yang tersedia, tetapi hanya untuk kueri yang sangat spesifik terkait pengawasan APIP.`

const (
	// Placeholder saat tidak ada dokumen sama sekali, supaya template system
	// prompt tetap terbentuk dengan benar (tidak pernah string kosong).
	EmptyKnowledgeBaseContext = "Tidak ada dokumen di knowledge base."

	ContextBlockHeader = "--- KONTEKS DOKUMEN ---"
	ContextBlockFooter = "--- AKHIR KONTEKS ---"
	DocumentHeaderFmt  = "--- Dokumen: %s ---\n%s"

	DefaultConversationTitle = "Percakapan Baru"
	TitlePromptFmt           = "Buat judul yang sangat singkat (maksimal 5 kata) untuk percakapan yang diawali dengan ini:\n\nPENGGUNA: \"%s\"\n\nJUDUL:"

	SearchToolName        = "googleSearch"
	SearchToolDescription = "Melakukan pencarian Google untuk mendapatkan informasi terkini terkait pengawasan internal pemerintah (APIP), peraturan, atau topik terkait."
	SearchFailedMessage   = "Gagal melakukan pencarian Google."
)

// Prompt untuk varian /ask yang memakai pencarian embedding di knowledge base.
const (
	AskWithContextPromptFmt = `Jawab pertanyaan berikut berdasarkan konteks yang diberikan. Jika konteks tidak relevan, jawab berdasarkan pengetahuan Anda sebagai ahli pengawasan internal pemerintah (APIP).

KONTEKS:
%s

PERTANYAAN:
%s`

	AskWithoutContextPromptFmt = `Jawab pertanyaan berikut sebagai ahli pengawasan internal pemerintah (APIP):

%s`

	AnalyzeDocumentsPromptFmt = `Analisis dokumen berikut secara mendalam dan berikan ringkasan serta pertanyaan kritis.

Dokumen:
%s`
)

const (
	// Batas minimal total konteks hasil retrieval agar dianggap "cukup".
	// Di bawah ini, prompt tanpa konteks dipakai supaya blok konteks yang
	// nyaris kosong tidak menyesatkan model.
	MinRetrievedContextLength = 50

	RetrievalSimilarityThreshold = 0.72
	RetrievalResultLimit         = 5

	// Parameter chunking ingestion.
	ChunkSize       = 1000
	ChunkOverlap    = 100
	EmbedBatchSize  = 100
	SearchResultTop = 3
)

const (
	EmbedTaskDocument = "RETRIEVAL_DOCUMENT"
	EmbedTaskQuery    = "RETRIEVAL_QUERY"
)
