package models

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

type User struct {
	ID          int       `json:"id" example:"1"`
	EmployeeId  string    `json:"employee_id" example:"GP-EMP001"`
	Email       string    `json:"email" example:"user@example.com"`
	Password    string    `json:"password" example:""`
	FirstName   string    `json:"first_name" example:"Anil"`
	LastName    string    `json:"last_name" example:"Mondal"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	FirstAccess time.Time `json:"first_access,omitempty" example:"2024-01-15T10:30:00Z"`
	LastAccess  time.Time `json:"last_access,omitempty" example:"2024-01-15T10:30:00Z"`
	ProfilePic  string    `json:"profile_picture" example:""`
	IsAdmin     bool      `json:"is_admin" example:"false"`
	Designation string    `json:"designation" example:"Panchayat Secretary"`
	Village     string    `json:"village" example:"Rampur"`
	Block       string    `json:"block" example:"Sadar"`
	District    string    `json:"district" example:"Nadia"`
	State       string    `json:"state" example:"West Bengal"`
	ZipCode     string    `json:"zip_code" example:"741101"`
	PhoneNo     string    `json:"phone_no" example:"9876543210"`
	RoleID      int       `json:"role_id" example:"1"`
	RoleName    string    `json:"role_name" example:"Employee"`
	Suspended   bool      `json:"suspended" example:"false"`
}

type Session struct {
	UserID                int       `json:"user_id"`
	SessionID             string    `json:"session_id"`
	HostName              string    `json:"host_name"`
	IPAddress             string    `json:"ip_address"`
	Timestamp             time.Time `json:"timestp"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

func GetSessionBySessionID(db *sql.DB, sessionID string) (*Session, error) {
	query := `SELECT session_id, user_id, host_name, timestp FROM session WHERE session_id = $1`

	var session Session

	err := db.QueryRow(query, sessionID).Scan(&session.SessionID, &session.UserID, &session.HostName, &session.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("session not found")
		}
		return nil, err
	}
	return &session, nil
}

type Setting struct {
	UserID                int  `json:"user_id" example:"1"`
	AllowMultipleSessions bool `json:"allow_multiple_sessions" example:"true"`
}

type ActivityLog struct {
	ID                int       `json:"id" example:"1"`
	CreatedAt         time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UserName          string    `json:"user_name" example:"Anil Mondal"`
	HostName          string    `json:"host_name" example:"gp-office-01"`
	EventContext      string    `json:"event_context" example:"Enquiry"`
	IPAddress         string    `json:"ip_address" example:"192.168.1.1"`
	Description       string    `json:"description" example:"Submitted domicile enquiry report"`
	EventName         string    `json:"event_name" example:"Create"`
	AffectedUserName  string    `json:"affected_user_name" example:"Sunita Das"`
	AffectedUserEmail string    `json:"affected_user_email" example:"sunita@example.com"`
	ApplicationID     string    `json:"application_id" example:"APP-2025-000123"`
}
