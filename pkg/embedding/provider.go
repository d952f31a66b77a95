package embedding

import "context"

// Provider menghasilkan vector embedding dari teks.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
