package storage

// Storage is the contract for publishing and reading pipeline artifacts.
type Storage interface {
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(filename string) error
}
