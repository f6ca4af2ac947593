package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"single placeholder",
			"SELECT payload FROM weekly_plans WHERE user_id = ?",
			"SELECT payload FROM weekly_plans WHERE user_id = $1",
		},
		{
			"multiple placeholders",
			"INSERT INTO freestyle_xp (user_id, day, xp) VALUES (?, ?, ?)",
			"INSERT INTO freestyle_xp (user_id, day, xp) VALUES ($1, $2, $3)",
		},
		{
			"no placeholders",
			"SELECT COUNT(*) FROM drills",
			"SELECT COUNT(*) FROM drills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewritePlaceholdersToNumbered(tt.query)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectQueryRewriting(t *testing.T) {
	query := "SELECT id FROM users WHERE email = ? AND weekly_email = ?"

	sqlite := NewSQLiteDialect()
	if got := sqlite.RewriteQuery(query); got != query {
		t.Errorf("sqlite should not rewrite, got %q", got)
	}

	mysql := NewMySQLDialect()
	if got := mysql.RewriteQuery(query); got != query {
		t.Errorf("mysql should not rewrite, got %q", got)
	}

	postgres := NewPostgresDialect()
	want := "SELECT id FROM users WHERE email = $1 AND weekly_email = $2"
	if got := postgres.RewriteQuery(query); got != want {
		t.Errorf("postgres rewrite got %q, want %q", got, want)
	}
}

func TestDialectLastInsertId(t *testing.T) {
	if !NewSQLiteDialect().SupportsLastInsertId() {
		t.Error("sqlite supports LastInsertId")
	}
	if !NewMySQLDialect().SupportsLastInsertId() {
		t.Error("mysql supports LastInsertId")
	}
	if NewPostgresDialect().SupportsLastInsertId() {
		t.Error("postgres requires RETURNING instead of LastInsertId")
	}
}

func TestDialectMigrationsSubdir(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{NewSQLiteDialect(), "sqlite"},
		{NewPostgresDialect(), "postgres"},
		{NewMySQLDialect(), "mysql"},
	}

	for _, tt := range tests {
		if got := tt.dialect.MigrationsSubdir(); got != tt.want {
			t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.want)
		}
	}
}
