package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations. The DDL sticks
// to the dialect subset shared by Postgres and SQLite so the same
// schema serves the daemon and the in-memory test store.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS reservation_emails (
	id               BIGINT PRIMARY KEY,
	first_name       VARCHAR(100) NOT NULL,
	last_name        VARCHAR(100) NOT NULL,
	phone            VARCHAR(20) NOT NULL,
	email            VARCHAR(255) NOT NULL,
	reservation_date DATE NOT NULL,
	reservation_time TIME NOT NULL,
	guests           INTEGER NOT NULL,
	special_requests TEXT,
	received_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	status           VARCHAR(20) DEFAULT 'pending'
		CHECK (status IN ('pending', 'confirmed', 'rejected'))
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_reservation_emails_status
	ON reservation_emails(status);

CREATE INDEX IF NOT EXISTS idx_reservation_emails_date
	ON reservation_emails(reservation_date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
