package interfaces

// KeyValueStoreInterface is the durable string map backing sessions, the
// alert marker and scheduler registrations.
type KeyValueStoreInterface interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close()
}
