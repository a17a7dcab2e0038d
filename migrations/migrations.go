package migrations

import (
	"database/sql"
	"time"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		name VARCHAR(50) PRIMARY KEY,
		seq INT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		email VARCHAR(100) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		avatar_url VARCHAR(255),
		created_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS issues (
		id INT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(20) NOT NULL,
		priority VARCHAR(10) NOT NULL,
		category VARCHAR(20) NOT NULL,
		assignee_id INT,
		reporter_id INT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INT PRIMARY KEY,
		content TEXT NOT NULL,
		issue_id INT NOT NULL,
		user_id INT NOT NULL,
		created_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS attachments (
		id INT PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		filepath VARCHAR(512) NOT NULL,
		issue_id INT NOT NULL,
		uploader_id INT NOT NULL,
		created_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id INT PRIMARY KEY,
		type VARCHAR(20) NOT NULL,
		message VARCHAR(512) NOT NULL,
		user_id INT NOT NULL,
		issue_id INT NOT NULL,
		seen BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL
	);`,
}

// AutoMigrate creates all tables if they do not exist.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range tables {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
