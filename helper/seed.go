package helper

import (
	"context"
	"fmt"

	"tourism/internal/domains/user/model"
	"tourism/internal/domains/user/model/dto"
	"tourism/internal/domains/user/repository"
	"tourism/shared"
	"tourism/shared/constant"
	"tourism/shared/password"
	"tourism/shared/validator"

	"github.com/rs/zerolog/log"
)

// SeedAdmin creates the first admin account. An existing account with the same email is left untouched.
func SeedAdmin(ctx context.Context, repo repository.User, email, plainPassword, fullName string) (created bool, err error) {
	req := dto.CreateUserRequest{
		Email:    email,
		Password: plainPassword,
		Role:     constant.RoleAdmin,
		FullName: fullName,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return false, fmt.Errorf("invalid admin account: %w", err)
	}

	exists, err := repo.Exist(ctx, shared.FilterByID(email, model.FieldEmail, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}

	if exists {
		log.Info().Str("email", email).Msg("Admin account already exists")

		return false, nil
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err = repo.Insert(ctx, req.ToModel(constant.ContextSystem, hashed)); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Info().Str("email", email).Msg("Admin account created")

	return true, nil
}
