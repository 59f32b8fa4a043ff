package postgres

import (
	"context"
	"log"

	"github.com/securitysvcs/auth-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

// SeedAccounts provisions the well-known dev accounts. Duplicate errors are
// ignored so the seed is restart safe.
func SeedAccounts(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	type seedAccount struct {
		Username string
		Role     domain.Role
		Pass     string
	}

	seeds := []seedAccount{
		{Username: "admin", Role: domain.RoleAdmin, Pass: "Admin@1234"},
		{Username: "manager", Role: domain.RoleManager, Pass: "Manager@1234"},
		{Username: "staff", Role: domain.RoleStaff, Pass: "Staff@1234"},
		{Username: "client1", Role: domain.RoleClient, Pass: "Client1@1234"},
		{Username: "client2", Role: domain.RoleClient, Pass: "Client2@1234"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Username, err)
			continue
		}

		a := domain.Account{
			Username:     s.Username,
			PasswordHash: hash,
			Role:         s.Role,
		}

		if _, err = repo.Create(ctx, a); err != nil {
			// ignore duplicates (restart safe)
			continue
		}
	}

	log.Println("[seed] postgres accounts seeded")
}
