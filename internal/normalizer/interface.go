package normalizer

// Service defines the interface for domain normalization
// External packages should use this interface, not the concrete implementations
type Service interface {
	Normalize(raw string) (string, error)
}
