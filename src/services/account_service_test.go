package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/fluentos/desktop-admin-api/src/repositories/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers wires a mock repository to an in-memory map
func memoryUsers() (*mock.UserRepository, map[string]*models.User) {
	store := map[string]*models.User{}
	repo := mock.NewUserRepository()
	repo.ListFunc = func(ctx context.Context, limit int) ([]models.User, error) {
		var out []models.User
		for _, u := range store {
			out = append(out, *u)
		}
		return out, nil
	}
	repo.GetByIDFunc = func(ctx context.Context, id string) (*models.User, error) {
		u, ok := store[id]
		if !ok {
			return nil, repositories.ErrNotFound
		}
		c := *u
		return &c, nil
	}
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		for _, u := range store {
			if u.Username == username {
				c := *u
				return &c, nil
			}
		}
		return nil, repositories.ErrNotFound
	}
	repo.CreateFunc = func(ctx context.Context, user *models.User) error {
		c := *user
		store[user.ID] = &c
		return nil
	}
	repo.UpdateFunc = func(ctx context.Context, user *models.User) error {
		if _, ok := store[user.ID]; !ok {
			return repositories.ErrNotFound
		}
		c := *user
		store[user.ID] = &c
		return nil
	}
	repo.DeleteFunc = func(ctx context.Context, id string) error {
		if _, ok := store[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(store, id)
		return nil
	}
	return repo, store
}

func TestAccountService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		user, err := svc.CreateUser(ctx, "eleve1", "secret", models.RoleUser)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "eleve1", user.Username)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, "UTC", user.CreatedAt.Location().String())

		stored := store[user.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret", stored.PasswordHash)
		assert.True(t, testHasher().Compare(stored.PasswordHash, "secret"))
	})

	t.Run("role defaults to user", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		user, err := svc.CreateUser(ctx, "eleve2", "secret", "")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		_, err := svc.CreateUser(ctx, "dup", "a", models.RoleUser)
		require.NoError(t, err)
		_, err = svc.CreateUser(ctx, "dup", "b", models.RoleAdmin)
		assertKind(t, err, ErrConflict, "Ce nom d'utilisateur existe déjà")
		assert.Len(t, repo.Calls["Create"], 1)
	})

	t.Run("unique index violation is a conflict", func(t *testing.T) {
		repo := mock.NewUserRepository()
		repo.CreateFunc = func(ctx context.Context, user *models.User) error {
			return repositories.ErrDuplicate
		}
		svc := NewAccountService(repo, testHasher())

		_, err := svc.CreateUser(ctx, "racer", "a", models.RoleUser)
		assertKind(t, err, ErrConflict, "")
	})

	t.Run("validation", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		_, err := svc.CreateUser(ctx, "", "x", models.RoleUser)
		assertKind(t, err, ErrValidation, "")
		_, err = svc.CreateUser(ctx, "x", "", models.RoleUser)
		assertKind(t, err, ErrValidation, "")
		_, err = svc.CreateUser(ctx, "x", "y", models.Role("root"))
		assertKind(t, err, ErrValidation, "")
		assert.Empty(t, repo.Calls["Create"])
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := mock.NewUserRepository()
		repo.CreateFunc = func(ctx context.Context, user *models.User) error {
			return errors.New("database error")
		}
		svc := NewAccountService(repo, testHasher())

		_, err := svc.CreateUser(ctx, "x", "y", models.RoleUser)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrConflict))
	})
}

func TestAccountService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("never returns nil", func(t *testing.T) {
		repo := mock.NewUserRepository()
		svc := NewAccountService(repo, testHasher())

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
		assert.Equal(t, []interface{}{models.MaxListedUsers}, repo.Calls["List"])
	})

	t.Run("lists created users", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		_, _ = svc.CreateUser(ctx, "a", "1", models.RoleUser)
		_, _ = svc.CreateUser(ctx, "b", "2", models.RoleAdmin)

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestAccountService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites fields", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		user, _ := svc.CreateUser(ctx, "old", "pw", models.RoleUser)

		err := svc.UpdateUser(ctx, user.ID, "new", "pw2", models.RoleAdmin)
		require.NoError(t, err)

		stored := store[user.ID]
		assert.Equal(t, "new", stored.Username)
		assert.Equal(t, models.RoleAdmin, stored.Role)
		assert.True(t, testHasher().Compare(stored.PasswordHash, "pw2"))
		assert.Equal(t, user.CreatedAt, stored.CreatedAt)
	})

	t.Run("keeping the same username is allowed", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		user, _ := svc.CreateUser(ctx, "same", "pw", models.RoleUser)

		require.NoError(t, svc.UpdateUser(ctx, user.ID, "same", "pw2", models.RoleUser))
	})

	t.Run("missing id is not found", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		err := svc.UpdateUser(ctx, "nope", "a", "b", models.RoleUser)
		assertKind(t, err, ErrNotFound, "Utilisateur non trouvé")
		assert.Empty(t, repo.Calls["Update"])
	})

	t.Run("taking another account's username is a conflict", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		_, _ = svc.CreateUser(ctx, "first", "pw", models.RoleUser)
		second, _ := svc.CreateUser(ctx, "second", "pw", models.RoleUser)

		err := svc.UpdateUser(ctx, second.ID, "first", "pw", models.RoleUser)
		assertKind(t, err, ErrConflict, "")
	})

	t.Run("protected account cannot be renamed", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		admin, _ := svc.CreateUser(ctx, models.ProtectedUsername, "pw", models.RoleAdmin)

		err := svc.UpdateUser(ctx, admin.ID, "renamed", "pw", models.RoleAdmin)
		assertKind(t, err, ErrForbidden, "Impossible de renommer le compte SuperAdmin")
		assert.Empty(t, repo.Calls["Update"])
		assert.Equal(t, models.ProtectedUsername, store[admin.ID].Username)

		err = svc.DeleteUser(ctx, admin.ID)
		assertKind(t, err, ErrForbidden, "")
	})

	t.Run("protected account can change its password", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		admin, _ := svc.CreateUser(ctx, models.ProtectedUsername, "pw", models.RoleAdmin)

		require.NoError(t, svc.UpdateUser(ctx, admin.ID, models.ProtectedUsername, "new-pw", models.RoleAdmin))
		assert.True(t, testHasher().Compare(store[admin.ID].PasswordHash, "new-pw"))
	})
}

func TestAccountService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes regular user", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		user, _ := svc.CreateUser(ctx, "bye", "pw", models.RoleUser)

		require.NoError(t, svc.DeleteUser(ctx, user.ID))
		assert.NotContains(t, store, user.ID)
	})

	t.Run("protected account is forbidden", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		admin, _ := svc.CreateUser(ctx, models.ProtectedUsername, "pw", models.RoleAdmin)

		err := svc.DeleteUser(ctx, admin.ID)
		assertKind(t, err, ErrForbidden, "Impossible de supprimer le compte SuperAdmin")
		assert.Contains(t, store, admin.ID)
		assert.Empty(t, repo.Calls["Delete"])
	})

	t.Run("missing id is not found", func(t *testing.T) {
		repo, _ := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		assertKind(t, svc.DeleteUser(ctx, "nope"), ErrNotFound, "")
	})
}

func TestAccountService_EnsureDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds both accounts once", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		require.NoError(t, svc.EnsureDefaults(ctx, DefaultCredentials{}))
		require.NoError(t, svc.EnsureDefaults(ctx, DefaultCredentials{}))

		assert.Len(t, store, 2)
		roles := map[string]models.Role{}
		hashes := map[string]string{}
		for _, u := range store {
			roles[u.Username] = u.Role
			hashes[u.Username] = u.PasswordHash
		}
		assert.Equal(t, models.RoleAdmin, roles[models.ProtectedUsername])
		assert.Equal(t, models.RoleUser, roles[models.DefaultUsername])
		assert.True(t, testHasher().Compare(hashes[models.ProtectedUsername], models.DefaultAdminPassword))
		assert.True(t, testHasher().Compare(hashes[models.DefaultUsername], models.DefaultUserPassword))
	})

	t.Run("uses configured passwords", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())

		require.NoError(t, svc.EnsureDefaults(ctx, DefaultCredentials{AdminPassword: "s3cret", UserPassword: "trainer"}))
		for _, u := range store {
			switch u.Username {
			case models.ProtectedUsername:
				assert.True(t, testHasher().Compare(u.PasswordHash, "s3cret"))
			case models.DefaultUsername:
				assert.True(t, testHasher().Compare(u.PasswordHash, "trainer"))
			}
		}
	})

	t.Run("leaves existing accounts untouched", func(t *testing.T) {
		repo, store := memoryUsers()
		svc := NewAccountService(repo, testHasher())
		existing, _ := svc.CreateUser(ctx, models.ProtectedUsername, "custom", models.RoleAdmin)

		require.NoError(t, svc.EnsureDefaults(ctx, DefaultCredentials{}))
		assert.Len(t, store, 2)
		assert.True(t, testHasher().Compare(store[existing.ID].PasswordHash, "custom"))
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		repo := mock.NewUserRepository()
		repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
			return nil, errors.New("connection refused")
		}
		svc := NewAccountService(repo, testHasher())

		assert.Error(t, svc.EnsureDefaults(ctx, DefaultCredentials{}))
		assert.Empty(t, repo.Calls["Create"])
	})
}
