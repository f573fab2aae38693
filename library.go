package abdesigner

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Library is a sqlite database of named documents. Identical documents
// stored under different names share a single blob.
type Library struct {
	db *sql.DB
}

// NewLibrary opens or creates the library in file.
func NewLibrary(file string) (*Library, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS blob (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS document (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, blob_id INTEGER NOT NULL, updated INTEGER NOT NULL, FOREIGN KEY(blob_id) REFERENCES blob(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (lib *Library) Close() error {
	return lib.db.Close()
}

func (lib *Library) addBlob(b []byte) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var id int64
	switch err := lib.db.QueryRow("SELECT id FROM blob WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := lib.db.Exec("INSERT INTO blob (sha1, data) VALUES (?, ?)", sha, b)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (lib *Library) pruneBlobs() error {
	_, err := lib.db.Exec("DELETE FROM blob WHERE id NOT IN (SELECT blob_id FROM document)")
	return err
}

// Put stores d under name, replacing any document already using it.
func (lib *Library) Put(name string, d *Document) error {
	b, err := Marshal(d)
	if err != nil {
		return err
	}

	blob, err := lib.addBlob(b)
	if err != nil {
		return err
	}

	if _, err := lib.db.Exec("INSERT OR REPLACE INTO document (name, blob_id, updated) VALUES (?, ?, ?)", name, blob, time.Now().Unix()); err != nil {
		return err
	}

	return lib.pruneBlobs()
}

// Get returns the document stored under name, or nil if there is none.
func (lib *Library) Get(name string) (*Document, error) {
	var b []byte
	switch err := lib.db.QueryRow("SELECT b.data FROM document AS d JOIN blob AS b ON d.blob_id = b.id WHERE d.name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return Unmarshal(b)
	default:
		return nil, err
	}
}

// List returns the names of all stored documents in order.
func (lib *Library) List() ([]string, error) {
	rows, err := lib.db.Query("SELECT name FROM document ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the document stored under name. Deleting a missing name
// is not an error.
func (lib *Library) Delete(name string) error {
	if _, err := lib.db.Exec("DELETE FROM document WHERE name = ?", name); err != nil {
		return err
	}
	return lib.pruneBlobs()
}
