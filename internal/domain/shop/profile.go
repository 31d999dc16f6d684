package shop

import (
	"context"
	"errors"
	"strings"
)

type ProfileInput struct {
	Name         string
	BusinessName string
	Email        string
	Phone        string
	Address      string
	Logo         string
}

// GetProfile devuelve el perfil del usuario; si todavía no existe, uno vacío.
func (s *Service) GetProfile(ctx context.Context) (UserProfile, error) {
	p, err := s.repo.GetProfile(ctx)
	if errors.Is(err, ErrNotFound) {
		return UserProfile{UserID: UserFrom(ctx)}, nil
	}
	return p, err
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (UserProfile, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.BusinessName) == "" {
		return UserProfile{}, s.reject(ctx, "profile.invalid", "Nome e nome do negócio são obrigatórios.", "", invalid("name/business_name"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p, err := s.repo.GetProfile(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		p = UserProfile{ID: s.newID(), UserID: UserFrom(ctx), CreatedAt: now}
	case err != nil:
		return UserProfile{}, s.storeFailure(ctx, "profile.update", err)
	}

	p.Name = strings.TrimSpace(in.Name)
	p.BusinessName = strings.TrimSpace(in.BusinessName)
	p.Email = strings.TrimSpace(in.Email)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Address = strings.TrimSpace(in.Address)
	p.Logo = strings.TrimSpace(in.Logo)
	p.UpdatedAt = now

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return UserProfile{}, s.storeFailure(ctx, "profile.update", err)
	}
	s.success(ctx, "profile.updated", "Perfil atualizado com sucesso!", p.ID)
	return p, nil
}
