package model

import "time"

// Profile models a row in the `profiles` table. Every user has at most one
// profile; the row is created lazily on first access with all optional
// fields empty and IsPublic defaulting to true.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner; unique per user.
//  Bio        – free-form introduction text.
//  Grade      – school year, e.g. "3".
//  Department – faculty or department name.
//  Hobbies    – free-form interests text.
//  AvatarURL  – URL of the profile image.
//  IsPublic   – whether non-friends may see the full profile.
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Profile struct {
	ID         uint64    // profiles.id
	UserID     uint64    // profiles.user_id
	Bio        string    // profiles.bio
	Grade      string    // profiles.grade
	Department string    // profiles.department
	Hobbies    string    // profiles.hobbies
	AvatarURL  string    // profiles.avatar_url
	IsPublic   bool      // profiles.is_public
	CreatedAt  time.Time // profiles.created_at
	UpdatedAt  time.Time // profiles.updated_at
}
