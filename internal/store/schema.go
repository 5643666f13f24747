package store

import "context"

// Schema is the full DDL for the mess management tables. Attendance
// uniqueness per (user_id, date) is enforced here rather than by a
// read-then-write check in the caller.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	password_hash TEXT NOT NULL,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS menu_items (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL,
	meal_type TEXT NOT NULL,
	items TEXT NOT NULL,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS daily_qr (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	qr_value TEXT NOT NULL UNIQUE,
	meal_type TEXT NOT NULL DEFAULT 'general',
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_daily_qr_date ON daily_qr(date);

CREATE TABLE IF NOT EXISTS attendance (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_email TEXT NOT NULL,
	user_name TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	meal_type TEXT NOT NULL DEFAULT 'general',
	qr_id TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendance_user ON attendance(user_id);
CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);

CREATE TABLE IF NOT EXISTS leave_requests (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_email TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	meal_type TEXT NOT NULL,
	reason TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
	responded_by TEXT,
	responded_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_user ON leave_requests(user_id);

CREATE TABLE IF NOT EXISTS feedback (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	rating INT NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'resolved', 'rejected')),
	admin_response TEXT,
	responded_by TEXT,
	responded_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id);

CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_email TEXT NOT NULL,
	amount INT NOT NULL,
	month TEXT NOT NULL,
	transaction_id TEXT,
	method TEXT,
	proof_url TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid', 'rejected')),
	verified_by TEXT,
	verified_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id);
`

// Migrate applies the schema. Safe to run on every startup.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.Client.ExecContext(ctx, Schema)
	return err
}
