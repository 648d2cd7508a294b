package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

// maxImportRows bounds one upload.
const maxImportRows = 2000

var counterColumns = []string{
	"runs_scored", "balls_faced", "fours", "sixes", "wickets_taken",
	"runs_conceded", "balls_bowled", "catches", "stumpings",
}

// ImportCSV reads a header row followed by one match line per row. Players
// are named by a player_id or a player_name column; every other column is
// optional and an empty cell is null. The whole file is read before anything
// is stored, so an oversized file writes nothing. Valid rows are then stored
// one by one and invalid rows are reported by line without stopping the import.
func (s *playerStatService) ImportCSV(ctx context.Context, sess session.Session, file io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv file is empty: %w", apperror.ErrInvalidInput)
		}
		return nil, fmt.Errorf("read csv header: %v: %w", err, apperror.ErrInvalidInput)
	}
	columns, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var byName map[string][]uuid.UUID
	if _, ok := columns["player_name"]; ok {
		byName, err = s.playersByName(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := &dto.ImportResult{Rows: []entity.PlayerStat{}, Errors: []dto.LineError{}}
	fail := func(line int, err error) {
		result.Failed++
		result.Errors = append(result.Errors, dto.LineError{Line: line, Error: err.Error()})
	}

	type csvLine struct {
		line   int
		record []string
	}
	var lines []csvLine
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				fail(parseErr.Line, parseErr.Err)
				continue
			}
			return nil, err
		}
		if len(lines) >= maxImportRows {
			return nil, fmt.Errorf("csv has more than %d rows: %w", maxImportRows, apperror.ErrInvalidInput)
		}
		line, _ := reader.FieldPos(0)
		lines = append(lines, csvLine{line: line, record: record})
	}

	for _, l := range lines {
		line, record := l.line, l.record
		if len(record) != len(header) {
			fail(line, fmt.Errorf("expected %d fields, got %d", len(header), len(record)))
			continue
		}

		in, err := rowToInsert(columns, record, byName)
		if err != nil {
			fail(line, err)
			continue
		}
		in.CreatedBy = sess.AccountID
		if err := in.Validate(); err != nil {
			fail(line, err)
			continue
		}
		if err := s.ensurePlayer(ctx, in.PlayerID); err != nil {
			fail(line, err)
			continue
		}

		stat, err := s.repo.Create(ctx, in)
		if err != nil {
			fail(line, err)
			continue
		}
		result.Imported++
		result.Rows = append(result.Rows, stat)
	}

	return result, nil
}

func parseHeader(header []string) (map[string]int, error) {
	known := map[string]bool{"player_id": true, "player_name": true, "match_date": true}
	for _, c := range counterColumns {
		known[c] = true
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if !known[name] {
			return nil, fmt.Errorf("unknown csv column %q: %w", h, apperror.ErrInvalidInput)
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate csv column %q: %w", name, apperror.ErrInvalidInput)
		}
		columns[name] = i
	}

	_, hasID := columns["player_id"]
	_, hasName := columns["player_name"]
	if !hasID && !hasName {
		return nil, fmt.Errorf("csv needs a player_id or player_name column: %w", apperror.ErrInvalidInput)
	}
	return columns, nil
}

func (s *playerStatService) playersByName(ctx context.Context) (map[string][]uuid.UUID, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]uuid.UUID, len(players))
	for _, p := range players {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		byName[key] = append(byName[key], p.ID)
	}
	return byName, nil
}

func rowToInsert(columns map[string]int, record []string, byName map[string][]uuid.UUID) (entity.PlayerStatInsert, error) {
	var in entity.PlayerStatInsert
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	if id := cell("player_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return in, fmt.Errorf("invalid player_id %q", id)
		}
		in.PlayerID = parsed
	} else if name := cell("player_name"); name != "" {
		ids := byName[strings.ToLower(name)]
		switch len(ids) {
		case 0:
			return in, fmt.Errorf("unknown player %q", name)
		case 1:
			in.PlayerID = ids[0]
		default:
			return in, fmt.Errorf("player name %q is ambiguous, use player_id", name)
		}
	} else {
		return in, errors.New("player is required")
	}

	if d := cell("match_date"); d != "" {
		matchDate, err := parseDate(&d)
		if err != nil {
			return in, fmt.Errorf("invalid match_date %q, want YYYY-MM-DD", d)
		}
		in.MatchDate = matchDate
	}

	targets := map[string]**int{
		"runs_scored":   &in.RunsScored,
		"balls_faced":   &in.BallsFaced,
		"fours":         &in.Fours,
		"sixes":         &in.Sixes,
		"wickets_taken": &in.WicketsTaken,
		"runs_conceded": &in.RunsConceded,
		"balls_bowled":  &in.BallsBowled,
		"catches":       &in.Catches,
		"stumpings":     &in.Stumpings,
	}
	for _, col := range counterColumns {
		raw := cell(col)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("%s must be a whole number, got %q", col, raw)
		}
		*targets[col] = &n
	}
	return in, nil
}
