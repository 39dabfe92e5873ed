package store

// Pure Go SQLite driver; no C toolchain is needed to build or test.
import (
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver used for the user store
const DriverName = "sqlite"
