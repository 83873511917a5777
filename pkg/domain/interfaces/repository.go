package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	ContentType() ContentTypeRepository
	Content() ContentRepository
	Activity() ActivityRepository

	// Close releases underlying resources
	Close() error
}
