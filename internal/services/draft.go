package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/models"
	"github.com/dmitrijs2005/authvault/internal/repositories/kv"
)

// DraftService persists the resumable snapshot of an in-progress signup form.
// It accepts the full form but stores models.RegistrationDraft, which has no
// password fields, so secrets can never reach durable storage through this
// path.
type DraftService struct {
	db *sql.DB

	now func() time.Time
}

func NewDraftService(db *sql.DB) *DraftService {
	return &DraftService{db: db, now: time.Now}
}

// Save overwrites the stored draft with the form's non-sensitive fields and
// refreshes the last-updated timestamp.
func (s *DraftService) Save(ctx context.Context, form *models.RegistrationForm) error {
	draft := models.RegistrationDraft{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		Country:      form.Country,
		AgreeToTerms: form.AgreeToTerms,
		LastUpdated:  s.now(),
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: failed to encode draft: %v", common.ErrorStoreFailure, err)
	}
	if err := kv.NewSQLiteRepository(s.db).Set(ctx, draftRegistrationKey, data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	return nil
}

// Load returns the stored draft, or (nil, nil) when there is none.
func (s *DraftService) Load(ctx context.Context) (*models.RegistrationDraft, error) {
	data, err := kv.NewSQLiteRepository(s.db).Get(ctx, draftRegistrationKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	var draft models.RegistrationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("%w: failed to decode draft: %v", common.ErrorStoreFailure, err)
	}
	return &draft, nil
}

// Clear removes the stored draft. Called after a successful registration.
func (s *DraftService) Clear(ctx context.Context) error {
	if err := kv.NewSQLiteRepository(s.db).Delete(ctx, draftRegistrationKey); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	return nil
}
