package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/yegors/flightqa/pkg/logger"

	_ "modernc.org/sqlite"
)

// ReferenceStore handles the reference tables (airport timezones and
// carrier codes). Rows are loaded once at startup and merged over the
// built-in defaults; the store is not consulted again afterwards.
type ReferenceStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open opens (or creates) the reference database at the given path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database: %w", err)
	}
	return db, nil
}

// NewReferenceStore creates a new SQLite reference store
func NewReferenceStore(db *sql.DB, logger *logger.Logger) (*ReferenceStore, error) {
	store := &ReferenceStore{
		db:     db,
		logger: logger.Named("sqlite-refdata"),
	}
	if err := store.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize reference storage: %w", err)
	}
	return store, nil
}

// initDB initializes the database tables
func (s *ReferenceStore) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS airport_zones (
			code TEXT PRIMARY KEY,
			tz TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create airport_zones table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS carrier_codes (
			icao TEXT PRIMARY KEY,
			iata TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create carrier_codes table: %w", err)
	}

	return nil
}

// StoreAirportZone inserts or replaces an airport timezone override
func (s *ReferenceStore) StoreAirportZone(code, tz string) error {
	_, err := s.db.Exec(
		`INSERT INTO airport_zones (code, tz) VALUES (?, ?)
		ON CONFLICT(code) DO UPDATE SET tz = excluded.tz`,
		code, tz,
	)
	if err != nil {
		return fmt.Errorf("failed to store airport zone: %w", err)
	}
	return nil
}

// StoreCarrierCode inserts or replaces a carrier code override
func (s *ReferenceStore) StoreCarrierCode(icao, iata string) error {
	_, err := s.db.Exec(
		`INSERT INTO carrier_codes (icao, iata) VALUES (?, ?)
		ON CONFLICT(icao) DO UPDATE SET iata = excluded.iata`,
		icao, iata,
	)
	if err != nil {
		return fmt.Errorf("failed to store carrier code: %w", err)
	}
	return nil
}

// LoadAirportZones returns all airport timezone overrides
func (s *ReferenceStore) LoadAirportZones() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT code, tz FROM airport_zones`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airport zones: %w", err)
	}
	defer rows.Close()

	zones := make(map[string]string)
	for rows.Next() {
		var code, tz string
		if err := rows.Scan(&code, &tz); err != nil {
			return nil, fmt.Errorf("failed to scan airport zone: %w", err)
		}
		zones[code] = tz
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read airport zones: %w", err)
	}

	return zones, nil
}

// LoadCarrierCodes returns all carrier code overrides
func (s *ReferenceStore) LoadCarrierCodes() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT icao, iata FROM carrier_codes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query carrier codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]string)
	for rows.Next() {
		var icao, iata string
		if err := rows.Scan(&icao, &iata); err != nil {
			return nil, fmt.Errorf("failed to scan carrier code: %w", err)
		}
		codes[icao] = iata
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read carrier codes: %w", err)
	}

	return codes, nil
}
