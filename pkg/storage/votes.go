package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/discontent/discontent/pkg/scores"
)

// RecordVote stores a user's vote on hostname. One vote is kept per user
// and hostname: a repeated vote is a no-op and a changed vote moves the sum
// by the difference without counting twice.
func (d *DB) RecordVote(ctx context.Context, hostname, userID string, value scores.Vote) (res VoteResult, err error) {
	if !value.Valid() {
		return res, scores.ErrInvalidVote
	}

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return res, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var previous int
	err = tx.QueryRowContext(ctx, "SELECT value FROM votes WHERE hostname = ? AND user_id = ?", hostname, userID).Scan(&previous)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
		if _, err = tx.ExecContext(ctx, `INSERT INTO votes(hostname, user_id, value) VALUES(?, ?, ?)`, hostname, userID, int(value)); err != nil {
			return res, err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO link_details(hostname, sum_of_votes, count_of_votes) VALUES(?, ?, 1)
ON CONFLICT(hostname) DO UPDATE SET sum_of_votes = sum_of_votes + excluded.sum_of_votes, count_of_votes = count_of_votes + 1`, hostname, int(value)); err != nil {
			return res, err
		}
		res.Changed = true
	case err != nil:
		return res, err
	case scores.Vote(previous) != value:
		res.Previous = scores.Vote(previous)
		if _, err = tx.ExecContext(ctx, `UPDATE votes SET value = ?, voted_at = CURRENT_TIMESTAMP WHERE hostname = ? AND user_id = ?`, int(value), hostname, userID); err != nil {
			return res, err
		}
		if _, err = tx.ExecContext(ctx, `UPDATE link_details SET sum_of_votes = sum_of_votes + ? WHERE hostname = ?`, int(value)-previous, hostname); err != nil {
			return res, err
		}
		res.Changed = true
	default:
		res.Previous = scores.Vote(previous)
	}

	if err = tx.QueryRowContext(ctx, "SELECT sum_of_votes, count_of_votes FROM link_details WHERE hostname = ?", hostname).Scan(&res.Tally.SumOfVotes, &res.Tally.CountOfVotes); err != nil {
		return res, err
	}
	if err = tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

// Tallies returns the tallies of the given hostnames. Hostnames nobody
// voted on are absent.
func (d *DB) Tallies(ctx context.Context, hostnames []string) (map[string]scores.Tally, error) {
	out := make(map[string]scores.Tally, len(hostnames))
	if len(hostnames) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(hostnames)), ",")
	args := make([]interface{}, 0, len(hostnames))
	for _, h := range hostnames {
		args = append(args, h)
	}
	rows, err := d.sql.QueryContext(ctx, "SELECT hostname, sum_of_votes, count_of_votes FROM link_details WHERE hostname IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var h string
		var t scores.Tally
		if err := rows.Scan(&h, &t.SumOfVotes, &t.CountOfVotes); err != nil {
			return nil, err
		}
		out[h] = t
	}
	return out, rows.Err()
}

// ListTallies returns every hostname's tally ordered by hostname.
func (d *DB) ListTallies(ctx context.Context) ([]HostnameTally, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT hostname, sum_of_votes, count_of_votes FROM link_details ORDER BY hostname")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HostnameTally
	for rows.Next() {
		var t HostnameTally
		if err := rows.Scan(&t.Hostname, &t.SumOfVotes, &t.CountOfVotes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DB) GetStats(ctx context.Context) (Stats, error) {
	s := Stats{ByScore: make(map[scores.Score]int)}
	query := `
		SELECT
			(SELECT COUNT(*) FROM link_details),
			(SELECT COUNT(*) FROM votes),
			(SELECT COUNT(DISTINCT user_id) FROM votes);
	`
	if err := d.sql.QueryRowContext(ctx, query).Scan(&s.Hostnames, &s.Votes, &s.Users); err != nil {
		return s, err
	}

	tallies, err := d.ListTallies(ctx)
	if err != nil {
		return s, err
	}
	for _, t := range tallies {
		s.ByScore[scores.FromTally(t.Tally)]++
	}
	return s, nil
}
