package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL creates all tables and indexes when they do not exist yet.
// Statements are idempotent so startup can run them unconditionally.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS memberships (
		user_id TEXT NOT NULL,
		org_id UUID NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, org_id)
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		contract_type TEXT NOT NULL DEFAULT '',
		salary_min INT,
		salary_max INT,
		created_by TEXT NOT NULL,
		responsible_user_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		note TEXT NOT NULL DEFAULT '',
		offer_id UUID,
		cv_file_name TEXT,
		cv_mime TEXT,
		cv_size BIGINT,
		cv_uploaded_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_org ON candidates(org_id)`,
	`CREATE TABLE IF NOT EXISTS tests (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_questions (
		id UUID PRIMARY KEY,
		test_id UUID NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		kind TEXT NOT NULL,
		min_value INT,
		max_value INT,
		options TEXT[],
		is_required BOOLEAN NOT NULL DEFAULT FALSE,
		order_index INT NOT NULL,
		dimension_code TEXT NOT NULL DEFAULT '',
		business_code TEXT NOT NULL DEFAULT '',
		is_reversed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_test_questions_test ON test_questions(test_id)`,
	`CREATE TABLE IF NOT EXISTS test_flows (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		offer_id UUID NOT NULL UNIQUE,
		name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_flow_items (
		id UUID PRIMARY KEY,
		flow_id UUID NOT NULL REFERENCES test_flows(id) ON DELETE CASCADE,
		order_index INT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		test_id UUID,
		is_required BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_items_flow ON test_flow_items(flow_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_items_test ON test_flow_items(test_id)`,
	`CREATE TABLE IF NOT EXISTS test_invites (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		candidate_id UUID NOT NULL,
		test_id UUID NOT NULL,
		flow_item_id UUID,
		token TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		submission_id UUID,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_test_invites_candidate ON test_invites(org_id, candidate_id)`,
	`CREATE TABLE IF NOT EXISTS test_submissions (
		id UUID PRIMARY KEY,
		org_id UUID NOT NULL,
		test_id UUID NOT NULL,
		candidate_id UUID NOT NULL,
		offer_id UUID,
		submitted_by TEXT,
		numeric_score INT,
		max_score INT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_submission_items (
		submission_id UUID NOT NULL REFERENCES test_submissions(id) ON DELETE CASCADE,
		question_id UUID NOT NULL,
		display_index INT NOT NULL,
		PRIMARY KEY (submission_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS test_answers (
		submission_id UUID NOT NULL REFERENCES test_submissions(id) ON DELETE CASCADE,
		question_id UUID NOT NULL,
		value_text TEXT NOT NULL DEFAULT '',
		value_number DOUBLE PRECISION,
		PRIMARY KEY (submission_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS test_reviews (
		id UUID PRIMARY KEY,
		submission_id UUID NOT NULL UNIQUE,
		reviewer_id TEXT NOT NULL,
		overall_comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_review_axes (
		review_id UUID NOT NULL REFERENCES test_reviews(id) ON DELETE CASCADE,
		axis_code TEXT NOT NULL,
		comment TEXT NOT NULL,
		PRIMARY KEY (review_id, axis_code)
	)`,
}

// EnsureSchema applies the DDL statements in order.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("op=schema.ensure: %w", err)
		}
	}
	return nil
}
