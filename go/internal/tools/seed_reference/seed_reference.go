package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/pickpool/go/internal/dbconfig"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

//go:embed teams.json
var teamsJSON []byte

type Team struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type counts struct {
	inserted int
	skipped  int
	errs     int
}

func (c *counts) add(affected int64, err error) {
	switch {
	case err != nil:
		c.errs++
	case affected == 1:
		c.inserted++
	default:
		c.skipped++
	}
}

func main() {
	ctx := context.Background()

	var teams []Team
	if err := json.Unmarshal(teamsJSON, &teams); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, pooldb.Schema); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}

	var c counts
	exec := func(what, sql string, args ...interface{}) {
		tag, err := pool.Exec(ctx, sql, args...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting %s: %v\n", what, err)
		}
		c.add(tag.RowsAffected(), err)
	}

	kinds := []struct {
		id   models.PredictionKindID
		name string
		desc string
	}{
		{models.KindNoPick, "No Pick", "No prediction made"},
		{models.KindHomeWin, "Home Win", "Home team wins"},
		{models.KindVisitorWin, "Visitor Win", "Visiting team wins"},
		{models.KindWithinThree, "Within Three", "Decided by three points or fewer"},
		{models.KindRegulationTie, "Regulation Tie", "Tie stands after regulation"},
		{models.KindOvertimeTie, "Overtime Tie", "Tie stands after overtime"},
	}
	for _, k := range kinds {
		exec("prediction kind "+k.name, `
            INSERT INTO prediction_kinds (id, name, sort_value, description)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (id) DO NOTHING
        `, int16(k.id), k.name, int(k.id), k.desc)
	}

	periodTypes := []struct {
		id   models.PeriodTypeID
		name string
	}{
		{models.PeriodTypePreseason, "Preseason"},
		{models.PeriodTypeRegular, "Regular Season"},
		{models.PeriodTypePostseason, "Postseason"},
	}
	for _, pt := range periodTypes {
		exec("period type "+pt.name, `
            INSERT INTO period_types (id, name) VALUES ($1, $2)
            ON CONFLICT (id) DO NOTHING
        `, int16(pt.id), pt.name)
	}

	exec("venue "+models.PlaceholderVenue, `
        INSERT INTO venues (id, name) VALUES ($1, $2)
        ON CONFLICT (name) DO NOTHING
    `, uuid.New(), models.PlaceholderVenue)

	teams = append([]Team{{Code: models.UnsetTeamCode, Name: "To Be Determined"}}, teams...)
	for _, t := range teams {
		exec("team "+t.Code, `
            INSERT INTO teams (id, code, name, city) VALUES ($1, $2, $3, $4)
            ON CONFLICT (code) DO NOTHING
        `, uuid.New(), t.Code, t.Name, t.City)
	}

	fmt.Printf(
		"Reference seed complete: %d inserted, %d skipped, %d errors\n",
		c.inserted, c.skipped, c.errs,
	)
	if c.errs > 0 {
		os.Exit(1)
	}
}
