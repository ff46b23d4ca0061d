// Package schema defines the database schema for development.
//
// DEVELOPMENT USE ONLY
// This file contains the current database schema and is used for development and testing.
// Before deploying to production, these table definitions should be converted to proper migrations.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		magic_code VARCHAR(255),  -- HMAC-SHA256 hash of authentication code (not plain text)
		magic_code_expires_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		approved_at TIMESTAMP,
		approved_by VARCHAR(255),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		company_name VARCHAR(255),
		contact_name VARCHAR(255),
		website_url VARCHAR(2048),
		preview_url VARCHAR(2048),
		notes TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		started_at TIMESTAMP,
		completed_at TIMESTAMP,
		showroom_status VARCHAR(20),
		showroom_sent_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		id UUID PRIMARY KEY,
		session_id UUID UNIQUE NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		business_name VARCHAR(255),
		website_url VARCHAR(2048),
		ambiance VARCHAR(50),
		valeurs VARCHAR(255),
		structure VARCHAR(50),
		typo VARCHAR(50),
		ratio VARCHAR(50),
		palette VARCHAR(50),
		custom_colors JSONB NOT NULL DEFAULT '[]'::jsonb,
		moodboard_likes JSONB NOT NULL DEFAULT '[]'::jsonb,
		features JSONB NOT NULL DEFAULT '[]'::jsonb,
		voice_transcription TEXT,
		voice_analysis TEXT,
		current_step INTEGER NOT NULL DEFAULT 0,
		revision INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS generated_prompts (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		prompt_type VARCHAR(50) NOT NULL,
		prompt_content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (session_id, prompt_type)
	)`,
	`CREATE TABLE IF NOT EXISTS design_proposals (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		slot_number INTEGER NOT NULL,
		title VARCHAR(255) NOT NULL,
		image_url VARCHAR(2048),
		html_code TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (session_id, slot_number)
	)`,
	`CREATE TABLE IF NOT EXISTS showroom_selections (
		id UUID PRIMARY KEY,
		session_id UUID UNIQUE NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		selected_proposal_id UUID NOT NULL,
		action_type VARCHAR(20) NOT NULL,
		discount_applied BOOLEAN NOT NULL DEFAULT FALSE,
		final_price DECIMAL(10,2) NOT NULL DEFAULT 0,
		client_email VARCHAR(255) NOT NULL,
		client_phone VARCHAR(50),
		message TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS email_outbox (
		id UUID PRIMARY KEY,
		kind VARCHAR(50) NOT NULL,
		recipient VARCHAR(255) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		next_attempt_at TIMESTAMP NOT NULL,
		last_error TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	// No-op on fresh installs (the column UNIQUE already creates clients_email_key),
	// upgrades databases created before the constraint existed
	`CREATE UNIQUE INDEX IF NOT EXISTS clients_email_key ON clients (email)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_client_id ON sessions (client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions (status)`,
	`CREATE INDEX IF NOT EXISTS idx_email_outbox_status ON email_outbox (status, next_attempt_at)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_user_id ON user_sessions (user_id)`,
}

// TableNames lists the tables in creation order, used to drop them in reverse
var TableNames = []string{
	"users",
	"user_sessions",
	"user_profiles",
	"clients",
	"sessions",
	"responses",
	"generated_prompts",
	"design_proposals",
	"showroom_selections",
	"email_outbox",
}
