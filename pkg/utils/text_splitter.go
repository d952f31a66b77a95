package utils

import "strings"

// SplitText memotong teks panjang menjadi chunk sekitar 'chunkSize' rune dengan
// 'overlap' rune di perbatasan supaya konteks tidak putus. Chunk yang kosong
// setelah trim whitespace dibuang.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback kalau overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunk := string(runes[i:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}

		if end == totalLen {
			break
		}
	}

	return chunks
}
