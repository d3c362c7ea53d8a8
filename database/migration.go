package database

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
)

const dbTimeout = time.Second * 3

// this is a custom migration function i use for sql dbs
func RunManualMigration(db *gorm.DB) {
	const TOTAL_WORKERS = 2
	var (
		wg      sync.WaitGroup
		errorCh = make(chan error, TOTAL_WORKERS)
	)
	wg.Add(TOTAL_WORKERS)
	log.Println("running db migration :::::::::::::")

	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		// check if table exist before creating
		tableExist, err := checkTableExist(ctx, db, "waitlist")
		if err != nil {
			errorCh <- err
		}
		if !tableExist {
			query := `CREATE TABLE waitlist (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			occupation VARCHAR(255) NOT NULL,
			platform VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);`
			err := db.Exec(query).Error
			if err != nil {
				errorCh <- err
			}
		}
		// the unique index is what makes duplicate submissions detectable
		// at write time, see repository.ErrAlreadyExists
		err = db.Exec(`
			ALTER TABLE waitlist
			ADD COLUMN IF NOT EXISTS occupation VARCHAR(255),
    ADD COLUMN IF NOT EXISTS platform VARCHAR(255);
		`).Error
		if err != nil {
			errorCh <- err
		}
		err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS waitlist_email_key ON waitlist (email);`).Error
		if err != nil {
			errorCh <- err
		}
	}()

	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		// check if table exist before creating
		tableExist, err := checkTableExist(ctx, db, "subscribers")
		if err != nil {
			errorCh <- err
		}
		if !tableExist {
			query := `CREATE TABLE subscribers (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);`
			err := db.Exec(query).Error
			if err != nil {
				errorCh <- err
			}
		}
		err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS subscribers_email_key ON subscribers (email);`).Error
		if err != nil {
			errorCh <- err
		}
	}()

	// more go routines can be added here and number of TOTAL_WORKERS increased to handle other tables

	go func() {
		wg.Wait()
		close(errorCh)
	}()

	for err := range errorCh {
		if err != nil {
			panic(err)
		}
	}

	log.Println("complete db migration")
}

// check if a table exist in the pg db
func checkTableExist(ctx context.Context, db *gorm.DB, tableName string) (bool, error) {
	query := `
		SELECT EXISTS (
   SELECT FROM pg_tables
   WHERE  schemaname = 'public'
   AND    tablename  = $1
   );
	`
	row := db.Raw(query, tableName)
	var response bool
	_ = row.Scan(&response)
	return response, nil
}
