package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL,
  email        TEXT        NOT NULL UNIQUE,
  role         TEXT        NOT NULL CHECK (role IN ('admin', 'employer', 'jobseeker')),
  photo        TEXT,
  skills       JSONB       NOT NULL DEFAULT '[]'::jsonb,
  company_name TEXT,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  employer_id UUID        NOT NULL REFERENCES users (id),
  title       TEXT        NOT NULL,
  status      TEXT        NOT NULL DEFAULT 'pending',
  deadline    TIMESTAMPTZ,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id                  UUID        PRIMARY KEY,
  job_id              UUID        NOT NULL REFERENCES jobs (id),
  applicant_id        UUID        NOT NULL REFERENCES users (id),
  cover_letter        TEXT        NOT NULL CHECK (btrim(cover_letter) <> ''),
  resume_data         BYTEA,
  resume_key          TEXT,
  resume_content_type TEXT        NOT NULL,
  resume_filename     TEXT        NOT NULL,
  resume_size         BIGINT      NOT NULL CHECK (resume_size >= 0),
  status              TEXT        NOT NULL DEFAULT 'applied'
                      CHECK (status IN ('applied', 'viewed', 'shortlisted', 'rejected', 'hired')),
  notes               TEXT        NOT NULL DEFAULT '',
  applied_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT applications_job_applicant_key UNIQUE (job_id, applicant_id),
  CONSTRAINT applications_resume_present CHECK (resume_data IS NOT NULL OR resume_key IS NOT NULL),
  CONSTRAINT applications_updated_after_applied CHECK (updated_at >= applied_at)
);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id           UUID        PRIMARY KEY,
  recipient_id UUID        NOT NULL REFERENCES users (id),
  message      TEXT        NOT NULL,
  type         TEXT        NOT NULL DEFAULT 'system'
               CHECK (type IN ('application', 'job', 'system', 'report', 'job_approved', 'job_rejected')),
  related_item UUID,
  is_read      BOOLEAN     NOT NULL DEFAULT false,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_applications_job_applied_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_job_applied_at ON applications (job_id, applied_at DESC);`,
	},
	{
		Name: "create_index_applications_applicant_applied_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_applicant_applied_at ON applications (applicant_id, applied_at DESC);`,
	},
	{
		Name: "create_index_notifications_recipient",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'applications' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.applications') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithField("event", "db_migration_start").Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
