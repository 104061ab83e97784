package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harukimz/timetable-share/internal/model"
)

// ProfileRepo provides persistence for user profiles. Profiles are created
// lazily the first time they are needed; the unique user_id key keeps
// concurrent lazy creates down to a single row.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileColumns = "id, user_id, bio, grade, department, hobbies, avatar_url, is_public, created_at, updated_at"

func scanProfile(row *sql.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.Grade, &p.Department, &p.Hobbies,
		&p.AvatarURL, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetByUserID fetches a user's profile, or ErrNotFound when none exists yet.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id=? LIMIT 1", userID))
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// GetOrCreate returns the user's profile, creating an empty public one on
// first access. Losing the create race just means reading the other
// request's row.
func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID uint64) (model.Profile, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if err != ErrNotFound {
		return model.Profile{}, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (user_id, bio, hobbies) VALUES (?, '', '')", userID); err != nil {
		if !isDuplicateKey(err) {
			return model.Profile{}, err
		}
	}
	return r.GetByUserID(ctx, userID)
}

// ProfileUpdate carries the optional fields of a partial update. Nil means
// "leave untouched"; pointers distinguish absent keys from empty strings.
type ProfileUpdate struct {
	Bio        *string
	Grade      *string
	Department *string
	Hobbies    *string
	AvatarURL  *string
	IsPublic   *bool
}

// UpdatePartial applies only the fields present in the update and returns
// the stored row. The profile is lazily created first when absent. With no
// fields set the profile is returned unchanged.
func (r *ProfileRepo) UpdatePartial(ctx context.Context, userID uint64, upd ProfileUpdate) (model.Profile, error) {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return model.Profile{}, err
	}

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.Grade != nil {
		add("grade", *upd.Grade)
	}
	if upd.Department != nil {
		add("department", *upd.Department)
	}
	if upd.Hobbies != nil {
		add("hobbies", *upd.Hobbies)
	}
	if upd.AvatarURL != nil {
		add("avatar_url", *upd.AvatarURL)
	}
	if upd.IsPublic != nil {
		add("is_public", *upd.IsPublic)
	}
	if len(set) > 0 {
		args = append(args, userID)
		q := "UPDATE profiles SET " + strings.Join(set, ", ") + " WHERE user_id=?"
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			return model.Profile{}, err
		}
	}
	return r.GetByUserID(ctx, userID)
}

// SetAvatar stores the avatar URL, creating the profile if needed.
func (r *ProfileRepo) SetAvatar(ctx context.Context, userID uint64, url string) (model.Profile, error) {
	return r.UpdatePartial(ctx, userID, ProfileUpdate{AvatarURL: &url})
}
