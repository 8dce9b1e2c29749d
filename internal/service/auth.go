package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
)

type UserRepository interface {
	FindByID(id int) (domain.User, error)
	FindByUsername(username string) (domain.User, error)
	UsernameExists(username string) (bool, error)
}

// AuthService signs users up and in through the console process. It never
// writes organisers.dat or customers.dat itself.
type AuthService struct {
	organisers UserRepository
	customers  UserRepository
	bridge     Bridge
	settle     *reconcile.Reconciler
}

func NewAuthService(organisers, customers UserRepository, b Bridge, settle *reconcile.Reconciler) *AuthService {
	return &AuthService{
		organisers: organisers,
		customers:  customers,
		bridge:     b,
		settle:     settle,
	}
}

func (s *AuthService) repo(role domain.Role) (UserRepository, error) {
	switch role {
	case domain.RoleOrganiser:
		return s.organisers, nil
	case domain.RoleCustomer:
		return s.customers, nil
	}
	return nil, invalid(fmt.Errorf("unknown role %q", role))
}

func (s *AuthService) Signup(ctx context.Context, role domain.Role, profile domain.Profile) (domain.User, error) {
	repo, err := s.repo(role)
	if err != nil {
		return domain.User{}, err
	}
	if err := validateProfile(&profile); err != nil {
		return domain.User{}, err
	}

	exists, err := repo.UsernameExists(profile.Username)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UsernameExists -> %w", err)
	}
	if exists {
		return domain.User{}, ErrUsernameTaken
	}

	var cmd bridge.Command = bridge.CustomerSignup{
		Name: profile.Name, Email: profile.Email, Username: profile.Username, Password: profile.Password,
	}
	if role == domain.RoleOrganiser {
		cmd = bridge.OrganiserSignup{
			Name: profile.Name, Email: profile.Email, Username: profile.Username, Password: profile.Password,
		}
	}

	resp, err := mutate(ctx, s.bridge, cmd, nil)
	if err != nil {
		return domain.User{}, err
	}

	user, err := reconcile.Await(ctx, s.settle, string(role)+" "+profile.Username, func() (domain.User, bool, error) {
		u, err := repo.FindByUsername(profile.Username)
		if errors.Is(err, ErrNotFound) {
			return u, false, nil
		}
		if err != nil {
			return u, false, err
		}
		// The echoed id, when present, must be the record we found.
		return u, !resp.HasID() || u.ID == resp.ID, nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// Login checks credentials with the console process and returns the stored
// user for the id it reports.
func (s *AuthService) Login(ctx context.Context, role domain.Role, username, password string) (domain.User, error) {
	repo, err := s.repo(role)
	if err != nil {
		return domain.User{}, err
	}
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	exists, err := repo.UsernameExists(username)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UsernameExists -> %w", err)
	}
	if !exists {
		return domain.User{}, ErrInvalidCredentials
	}

	var cmd bridge.Command = bridge.CustomerLogin{Username: username, Password: password}
	if role == domain.RoleOrganiser {
		cmd = bridge.OrganiserLogin{Username: username, Password: password}
	}

	resp, err := s.bridge.Do(ctx, cmd)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.bridge.Do -> %w", err)
	}
	if resp.Status == bridge.StatusRejected {
		return domain.User{}, ErrInvalidCredentials
	}
	if resp.Status != bridge.StatusOK || !resp.HasID() {
		return domain.User{}, fmt.Errorf("%s answered %s -> %w", cmd.Opcode(), resp.Status, ErrUnrecognizedOutput)
	}

	user, err := repo.FindByID(resp.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.FindByID -> %w", notFound(err, ErrInvalidCredentials))
	}

	return user, nil
}

// FindUser resolves a session's user.
func (s *AuthService) FindUser(role domain.Role, id int) (domain.User, error) {
	repo, err := s.repo(role)
	if err != nil {
		return domain.User{}, err
	}

	user, err := repo.FindByID(id)
	if err != nil {
		missing := ErrCustomerNotFound
		if role == domain.RoleOrganiser {
			missing = ErrOrganiserNotFound
		}
		return domain.User{}, fmt.Errorf("repo.FindByID -> %w", notFound(err, missing))
	}

	return user, nil
}
