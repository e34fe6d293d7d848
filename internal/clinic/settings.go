package clinic

import (
	"context"
	"errors"

	"clinicore/internal/seed"
	"clinicore/pkg/domain"
)

// GetSettings returns the settings singleton, creating it with defaults when
// absent so callers never observe a missing configuration.
func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	start := s.now()
	var err error
	defer func() { s.observe("get_settings", start, err) }()

	var out domain.Settings
	var ok bool
	out, ok, err = getTyped[domain.Settings](s, domain.CollectionSettings, domain.SettingsID)
	if err != nil || ok {
		return out, err
	}
	if _, err = s.store.Insert(ctx, domain.CollectionSettings, seed.DefaultSettings()); err != nil {
		var dup domain.DuplicateKeyError
		if !errors.As(err, &dup) {
			return domain.Settings{}, err
		}
		err = nil
	}
	out, _, err = getTyped[domain.Settings](s, domain.CollectionSettings, domain.SettingsID)
	return out, err
}

// UpdateSettings applies a shallow partial update to the singleton.
func (s *Service) UpdateSettings(ctx context.Context, fields domain.Document) (domain.Settings, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_settings", start, err) }()

	if _, err = s.GetSettings(ctx); err != nil {
		return domain.Settings{}, err
	}
	var out domain.Settings
	out, err = patchTyped[domain.Settings](s, ctx, domain.CollectionSettings, domain.SettingsID, fields)
	return out, err
}

// Profiles. The active profile's identity fields are mirrored flattened into
// the settings singleton so report rendering reads one document.

func (s *Service) ListProfiles() ([]domain.Profile, error) {
	return listTyped[domain.Profile](s, domain.CollectionProfiles, nil, domain.FindOptions{SortField: "name"})
}

func (s *Service) GetProfile(id string) (domain.Profile, bool, error) {
	return getTyped[domain.Profile](s, domain.CollectionProfiles, id)
}

// CreateProfile stores a profile and immediately activates it.
func (s *Service) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_profile", start, err) }()

	p.ID = s.newID()
	var out domain.Profile
	out, err = insertTyped(s, ctx, domain.CollectionProfiles, p)
	if err != nil {
		return domain.Profile{}, err
	}
	if err = s.flattenProfile(ctx, out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// UpdateProfile patches a profile; when the profile is active its identity
// fields are re-flattened into settings.
func (s *Service) UpdateProfile(ctx context.Context, id string, fields domain.Document) (domain.Profile, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_profile", start, err) }()

	var out domain.Profile
	out, err = patchTyped[domain.Profile](s, ctx, domain.CollectionProfiles, id, fields)
	if err != nil {
		return domain.Profile{}, err
	}
	var settings domain.Settings
	settings, err = s.GetSettings(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if settings.ActiveProfileID == id {
		if err = s.flattenProfile(ctx, out); err != nil {
			return domain.Profile{}, err
		}
	}
	return out, nil
}

// ActivateProfile flattens the profile's identity fields into settings and
// records it as the active profile.
func (s *Service) ActivateProfile(ctx context.Context, id string) (domain.Settings, error) {
	start := s.now()
	var err error
	defer func() { s.observe("activate_profile", start, err) }()

	var p domain.Profile
	var ok bool
	p, ok, err = getTyped[domain.Profile](s, domain.CollectionProfiles, id)
	if err != nil {
		return domain.Settings{}, err
	}
	if !ok {
		err = domain.NotFoundError{Collection: domain.CollectionProfiles, ID: id}
		return domain.Settings{}, err
	}
	if err = s.flattenProfile(ctx, p); err != nil {
		return domain.Settings{}, err
	}
	return s.GetSettings(ctx)
}

// DeleteProfile removes a profile; deleting the active profile clears the
// active pointer in settings while keeping the flattened identity fields.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_profile", start, err) }()

	var settings domain.Settings
	settings, err = s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.ActiveProfileID == id {
		if _, err = s.store.Patch(ctx, domain.CollectionSettings, domain.SettingsID, domain.Document{
			"active_profile_id":   nil,
			"active_profile_name": nil,
		}); err != nil {
			return err
		}
	}
	err = s.removeDoc(ctx, domain.CollectionProfiles, id)
	return err
}

func (s *Service) flattenProfile(ctx context.Context, p domain.Profile) error {
	if _, err := s.GetSettings(ctx); err != nil {
		return err
	}
	encoded, err := domain.EncodeDocument(p)
	if err != nil {
		return err
	}
	fields := domain.Document{
		"active_profile_id":   p.ID,
		"active_profile_name": p.Name,
	}
	for _, name := range []string{
		"clinic_name", "clinic_address", "practitioner_name", "license_number",
		"professional_email", "professional_phone", "letterhead_path",
		"signature_path", "letterhead_margins_mm",
	} {
		if value, present := encoded[name]; present {
			fields[name] = value
		}
	}
	_, err = s.store.Patch(ctx, domain.CollectionSettings, domain.SettingsID, fields)
	return err
}
