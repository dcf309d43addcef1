package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"panchayat/models"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var db *sql.DB

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Set connection pool settings optimized for light server load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// SaveSession saves a new session for a user, handling multiple device support.
// If allowMultipleSessions is false, all existing sessions are deleted before
// creating a new one.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		deleteAllQuery := `DELETE FROM session WHERE user_id = $1`
		_, err := db.Exec(deleteAllQuery, session.UserID)
		if err != nil {
			return fmt.Errorf("failed to delete all user sessions: %v", err)
		}
	}

	insertQuery := `INSERT INTO session (user_id, session_id, host_name, ip_address, timestp, expires_at, refresh_token, refresh_token_expires_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.Exec(insertQuery, session.UserID, session.SessionID, session.HostName, session.IPAddress, session.Timestamp, session.ExpiresAt, session.RefreshToken, session.RefreshTokenExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %v", err)
	}
	return nil
}

// DeleteSessionByID deletes a specific session by session_id
func DeleteSessionByID(db *sql.DB, sessionID string, userID int) error {
	query := `DELETE FROM session WHERE session_id = $1 AND user_id = $2`
	result, err := db.Exec(query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %v", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("session not found or already deleted")
	}

	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password, suspended FROM users WHERE LOWER(email) = LOWER($1)`

	err := db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Password, &user.Suspended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}

	return &user, nil
}

func CleanupExpiredSessions(db *sql.DB) error {
	threshold := time.Now().Add(-24 * time.Hour)
	_, err := db.Exec("DELETE FROM session WHERE expires_at < $1", threshold)
	return err
}

// GetUserBySessionID retrieves a User by the given session ID from the database.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	query := `
		SELECT u.id, u.employee_id, u.email, u.first_name, u.last_name,
			   u.created_at, u.updated_at, u.first_access, u.last_access,
			   u.profile_picture, u.is_admin, u.designation, u.village,
			   u.block, u.district, u.state, u.zip_code, u.phone_no,
			   r.role_name, u.suspended
		FROM session s
		JOIN users u ON s.user_id = u.id
		JOIN roles r ON u.role_id = r.role_id
		WHERE s.session_id = $1
	`

	var user models.User
	var firstAccess, lastAccess sql.NullTime

	err := db.QueryRow(query, sessionID).Scan(
		&user.ID, &user.EmployeeId, &user.Email, &user.FirstName,
		&user.LastName, &user.CreatedAt, &user.UpdatedAt,
		&firstAccess, &lastAccess, &user.ProfilePic,
		&user.IsAdmin, &user.Designation, &user.Village,
		&user.Block, &user.District, &user.State, &user.ZipCode,
		&user.PhoneNo, &user.RoleName, &user.Suspended,
	)
	if err != nil || user.Suspended {
		if err == sql.ErrNoRows {
			return nil, errors.New("user not found for the given session ID or account suspended")
		}
		if err == nil {
			return nil, errors.New("account suspended")
		}
		return nil, err
	}

	if firstAccess.Valid {
		user.FirstAccess = firstAccess.Time
	}
	if lastAccess.Valid {
		user.LastAccess = lastAccess.Time
	}

	return &user, nil
}

func GetRoleIDByUserID(db *sql.DB, userID int) (int, error) {
	var roleID int
	query := `SELECT role_id FROM users WHERE id = $1`
	err := db.QueryRow(query, userID).Scan(&roleID)
	return roleID, err
}
