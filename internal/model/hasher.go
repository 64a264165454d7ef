package model

// PasswordHasher hashes secrets one-way with a per-record salt and verifies
// presented secrets against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}
