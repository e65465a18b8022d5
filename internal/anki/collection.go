package anki

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/phrasedeck/phrasedeck/internal/deck"
)

// fieldSeparator joins note fields in the flds column (ASCII 31).
const fieldSeparator = "\x1f"

// createCollection builds the collection.anki2 SQLite database holding the
// deck, its note type and one note per card.
func createCollection(dbPath string, d deck.Deck, media map[string]int) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := insertCollectionRow(db, d); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := insertNotesAndCards(db, d, media); err != nil {
		return err
	}
	return nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

func insertCollectionRow(db *sql.DB, d deck.Deck) error {
	now := time.Now().Unix()
	mid := modelID(d.Languages)

	decks := map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", d.ID): deckConfig(d.ID, d.Name,
			fmt.Sprintf("%s flashcards created by phrasedeck", d.Languages), now),
	}
	decksJSON, _ := json.Marshal(decks)

	models := map[string]interface{}{
		fmt.Sprintf("%d", mid): noteTypeConfig(d),
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", mid),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}",
	)
	return err
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func insertNotesAndCards(db *sql.DB, d deck.Deck, media map[string]int) error {
	now := time.Now().Unix()
	mid := modelID(d.Languages)

	noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, c := range d.Cards {
		audioField := ""
		if c.Audio != nil {
			if _, ok := media[c.Audio.Filename]; ok {
				audioField = fmt.Sprintf("[sound:%s]", c.Audio.Filename)
			}
		}

		fields := strings.Join([]string{
			c.Sentence.Text,
			c.Translation.Text,
			formatBreakdown(c.Breakdown),
			audioField,
			formatGrammarNotes(c.GrammarNotes),
			strings.Join(c.Tags, " "),
			c.ID,
		}, fieldSeparator)

		nid := noteID(c.ID)
		_, err := db.Exec(noteQuery,
			nid,             // id
			noteGUID(c.ID),  // guid
			mid,             // mid
			now,             // mod
			-1,              // usn
			tagsField(c.Tags),
			fields,          // flds
			c.Sentence.Text, // sfld (sort field)
			0,               // csum
			0,               // flags
			"",              // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note for %q: %w", c.Sentence.Text, err)
		}

		_, err = db.Exec(cardQuery,
			ankiCardID(c.ID), // id
			nid,              // nid
			d.ID,             // did
			0,                // ord (single template)
			now,              // mod
			-1,               // usn
			0,                // type (0=new)
			0,                // queue (0=new)
			i+1,              // due (position for new cards)
			0,                // ivl
			0,                // factor
			0,                // reps
			0,                // lapses
			0,                // left
			0,                // odue
			0,                // odid
			0,                // flags
			"",               // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert card for %q: %w", c.Sentence.Text, err)
		}
	}

	return nil
}

// tagsField renders the notes.tags column, which Anki expects surrounded by
// single spaces.
func tagsField(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}
