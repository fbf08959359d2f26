package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level    DoctorIssueLevel `json:"level"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Path     string           `json:"path,omitempty"`
	ServerID string           `json:"serverId,omitempty"`
	Position int              `json:"position"`
}

type DoctorReport struct {
	Servers int           `json:"servers"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

// DoctorServers inspects the persisted rows of the store in dir without rewriting them.
//
// Problems that Load repairs on its own (blank ids) are warnings; problems that would make a
// server unusable or Load fail are errors.
func DoctorServers(ctx context.Context, dir string) DoctorReport {
	st := Store{Dir: dir}
	var issues []DoctorIssue

	db, err := st.openSQLite(ctx)
	if err != nil {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:    DoctorIssueLevelError,
			Code:     "sqlite_open_failed",
			Message:  err.Error(),
			Path:     st.sqlitePath(),
			Position: -1,
		}}}
	}
	defer db.Close()

	rows, err := doctorRows(ctx, db)
	if err != nil {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:    DoctorIssueLevelError,
			Code:     "sqlite_read_failed",
			Message:  err.Error(),
			Path:     st.sqlitePath(),
			Position: -1,
		}}}
	}

	for i, r := range rows {
		id := strings.TrimSpace(r.id)
		switch {
		case id == "":
			issues = append(issues, DoctorIssue{
				Level:    DoctorIssueLevelWarn,
				Code:     "missing_id",
				Message:  "server has no id; the next load assigns one",
				Position: i,
			})
		case !IsNumericID(id):
			issues = append(issues, DoctorIssue{
				Level:    DoctorIssueLevelWarn,
				Code:     "non_numeric_id",
				Message:  fmt.Sprintf("id %q is not a number; new ids skip it", id),
				ServerID: id,
				Position: i,
			})
		}
		if strings.TrimSpace(r.hostname) == "" {
			issues = append(issues, DoctorIssue{
				Level:    DoctorIssueLevelError,
				Code:     "blank_hostname",
				Message:  "server has an empty hostname",
				ServerID: id,
				Position: i,
			})
		}
		if r.port.Valid && !validPort(r.port.String) {
			issues = append(issues, DoctorIssue{
				Level:    DoctorIssueLevelWarn,
				Code:     "invalid_port",
				Message:  fmt.Sprintf("port %q is not in 1-65535", r.port.String),
				ServerID: id,
				Position: i,
			})
		}
	}

	if len(rows) == 0 {
		if it, ok := doctorLegacyJSON(ctx, st, db); ok {
			issues = append(issues, it)
		}
	}

	return DoctorReport{Servers: len(rows), Issues: issuesOrEmpty(issues)}
}

type doctorRow struct {
	id       string
	hostname string
	port     sql.NullString
}

func doctorRows(ctx context.Context, db *sql.DB) ([]doctorRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, hostname, port FROM servers ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []doctorRow
	for rows.Next() {
		var r doctorRow
		if err := rows.Scan(&r.id, &r.hostname, &r.port); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// doctorLegacyJSON reports a servers.json that the first load would fail to import.
func doctorLegacyJSON(ctx context.Context, st Store, db *sql.DB) (DoctorIssue, bool) {
	done, err := metaValue(ctx, db, "legacy_imported")
	if err != nil || done != "" {
		return DoctorIssue{}, false
	}
	b, err := os.ReadFile(st.legacyJSONPath())
	if err != nil || strings.TrimSpace(string(b)) == "" {
		return DoctorIssue{}, false
	}
	if _, err := ParseLegacyServers(b); err != nil {
		return DoctorIssue{
			Level:    DoctorIssueLevelError,
			Code:     "legacy_json_invalid",
			Message:  err.Error(),
			Path:     st.legacyJSONPath(),
			Position: -1,
		}, true
	}
	return DoctorIssue{
		Level:    DoctorIssueLevelWarn,
		Code:     "legacy_json_pending",
		Message:  "servers.json has not been imported yet; the next load imports it",
		Path:     st.legacyJSONPath(),
		Position: -1,
	}, true
}

func issuesOrEmpty(xs []DoctorIssue) []DoctorIssue {
	if xs == nil {
		return []DoctorIssue{}
	}
	return xs
}

func validPort(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 1 && n <= 65535
}
