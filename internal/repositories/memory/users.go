package memory

import (
	"context"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
)

type userRepository struct{ s *Store }

func NewUserRepository(s *Store) interfaces.UserRepository { return &userRepository{s: s} }

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Phone == user.Phone {
			return interfaces.ErrDuplicate
		}
	}

	user.ID = r.s.next("users")
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = clone(user)
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(u), nil
}

func (r *userRepository) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Phone == phone {
			return clone(u), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *userRepository) List(_ context.Context, phone string) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := sortedIDs(r.s.users)
	out := make([]*models.User, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		u := r.s.users[ids[i]]
		if phone != "" && u.Phone != phone {
			continue
		}
		out = append(out, clone(u))
	}
	return out, nil
}

type adminRepository struct{ s *Store }

func NewAdminRepository(s *Store) interfaces.AdminRepository { return &adminRepository{s: s} }

func (r *adminRepository) Create(_ context.Context, admin *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.admins {
		if a.Login == admin.Login {
			return interfaces.ErrDuplicate
		}
	}

	admin.ID = r.s.next("admins")
	admin.CreatedAt = r.s.now()
	r.s.admins[admin.ID] = clone(admin)
	return nil
}

func (r *adminRepository) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.admins[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(a), nil
}

func (r *adminRepository) GetByLogin(_ context.Context, login string) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.admins {
		if a.Login == login {
			return clone(a), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *adminRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.admins)), nil
}

func (r *adminRepository) UpdateLastLogin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.admins[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	now := r.s.now()
	a.LastLoginAt = &now
	return nil
}
