package repository

import (
	"errors"
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

// UserRepository reads organisers.dat or customers.dat. Users are only ever
// written by the console process.
type UserRepository struct {
	role  domain.Role
	table Table[dao.User]
}

func NewUserRepository(role domain.Role, table Table[dao.User]) *UserRepository {
	return &UserRepository{
		role:  role,
		table: table,
	}
}

func (r *UserRepository) Role() domain.Role { return r.role }

func (r *UserRepository) FindByID(id int) (domain.User, error) {
	k, ok := key(id)
	if !ok {
		return domain.User{}, fmt.Errorf("id %d -> %w", id, ErrNotFound)
	}

	found, err := r.table.FindByID(k)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.table.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(username string) (domain.User, error) {
	found, err := r.table.FindByField("username", username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.table.FindByField -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	_, err := r.FindByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *UserRepository) List() ([]domain.User, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	return mapAll(all, r.daoToDomain), nil
}

func (r *UserRepository) IDs() ([]int32, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return nil, fmt.Errorf("r.table.Keys -> %w", err)
	}

	return keys, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:       int(u.ID),
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
		Password: u.Password,
		Role:     r.role,
	}
}
