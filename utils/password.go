package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hache un mot de passe en utilisant bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword vérifie si un mot de passe correspond à son hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// LazyPassword garde un mot de passe de configuration, haché au premier usage
// et jamais conservé en clair au-delà.
type LazyPassword struct {
	once  sync.Once
	plain string
	hash  string
	err   error
}

// NewLazyPassword prépare le hachage différé de plain
func NewLazyPassword(plain string) *LazyPassword {
	return &LazyPassword{plain: plain}
}

// Check compare candidate au mot de passe configuré. Un mot de passe vide ne correspond jamais.
func (p *LazyPassword) Check(candidate string) (bool, error) {
	p.once.Do(func() {
		if p.plain == "" {
			return
		}
		p.hash, p.err = HashPassword(p.plain)
		p.plain = ""
	})
	if p.err != nil {
		return false, p.err
	}
	if p.hash == "" || candidate == "" {
		return false, nil
	}
	return CheckPassword(p.hash, candidate), nil
}
