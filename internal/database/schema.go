package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL for every table, in dependency order. The statements
// are idempotent so Migrate can run on every startup.
//
// Uniqueness invariants live here rather than only in application code:
//   - users: username and email are unique.
//   - timetables: one entry per (user, day, period).
//   - friends: one row per unordered user pair, via generated
//     pair_lo/pair_hi columns (LEAST/GREATEST of the two ids).
//   - conversations: one row per pair; user1_id < user2_id is kept by the
//     application, the unique key closes the race.
//   - profiles: one row per user.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(80)  NOT NULL,
		email         VARCHAR(120) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS timetables (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id      BIGINT UNSIGNED NOT NULL,
		day_of_week  TINYINT NOT NULL,
		period       TINYINT NOT NULL,
		subject_name VARCHAR(255) NOT NULL DEFAULT '',
		room         VARCHAR(255) NOT NULL DEFAULT '',
		start_time   TIME NOT NULL,
		end_time     TIME NOT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_timetables_slot (user_id, day_of_week, period),
		CONSTRAINT fk_timetables_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS friends (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id        BIGINT UNSIGNED NOT NULL,
		friend_user_id BIGINT UNSIGNED NOT NULL,
		status         ENUM('pending','accepted') NOT NULL DEFAULT 'pending',
		pair_lo        BIGINT UNSIGNED AS (LEAST(user_id, friend_user_id)) STORED,
		pair_hi        BIGINT UNSIGNED AS (GREATEST(user_id, friend_user_id)) STORED,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_friends_pair (pair_lo, pair_hi),
		CONSTRAINT fk_friends_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_friends_friend FOREIGN KEY (friend_user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS messages (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		sender_id   BIGINT UNSIGNED NOT NULL,
		receiver_id BIGINT UNSIGNED NOT NULL,
		content     TEXT NOT NULL,
		is_read     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_messages_receiver_unread (receiver_id, is_read),
		CONSTRAINT fk_messages_sender FOREIGN KEY (sender_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_messages_receiver FOREIGN KEY (receiver_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user1_id        BIGINT UNSIGNED NOT NULL,
		user2_id        BIGINT UNSIGNED NOT NULL,
		last_message_id BIGINT UNSIGNED NULL,
		updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_conversations_pair (user1_id, user2_id),
		CONSTRAINT fk_conversations_user1 FOREIGN KEY (user1_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_conversations_user2 FOREIGN KEY (user2_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_conversations_last_message FOREIGN KEY (last_message_id) REFERENCES messages (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		bio        TEXT NOT NULL,
		grade      VARCHAR(50)  NOT NULL DEFAULT '',
		department VARCHAR(100) NOT NULL DEFAULT '',
		hobbies    TEXT NOT NULL,
		avatar_url VARCHAR(255) NOT NULL DEFAULT '',
		is_public  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_profiles_user (user_id),
		CONSTRAINT fk_profiles_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements one by one. It stops at the first
// failure so a broken DDL never leaves later tables silently missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
