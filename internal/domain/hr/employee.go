package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// AvailabilitySlot is a weekly working window
type AvailabilitySlot struct {
	Day   string `json:"day"`
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "17:30"
}

// Performance holds review data for an employee or consultant
type Performance struct {
	Rating            float64   `json:"rating"`
	CompletedProjects int       `json:"completedProjects"`
	LastReviewDate    time.Time `json:"lastReviewDate"`
}

// Employee represents an HR record with nested skills, availability and
// performance sub-objects
type Employee struct {
	ID           string             `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID     string             `json:"tenantId" gorm:"type:varchar(36);index"`
	Name         string             `json:"name" gorm:"type:varchar(200);not null"`
	Email        string             `json:"email" gorm:"type:varchar(200);index"`
	Phone        string             `json:"phone" gorm:"type:varchar(50)"`
	Department   string             `json:"department" gorm:"type:varchar(100);index"`
	Role         string             `json:"role" gorm:"type:varchar(100)"`
	Status       EmployeeStatus     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	JoinDate     time.Time          `json:"joinDate"`
	Skills       []string           `json:"skills" gorm:"serializer:json"`
	Availability []AvailabilitySlot `json:"availability" gorm:"serializer:json"`
	Performance  Performance        `json:"performance" gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an active employee joined today
func NewEmployee(tenantID, name, department, role string) *Employee {
	return &Employee{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Name:       name,
		Department: department,
		Role:       role,
		Status:     EmployeeStatusActive,
		JoinDate:   time.Now(),
	}
}

// Consultant represents an external specialist engaged per hour
type Consultant struct {
	ID             string             `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID       string             `json:"tenantId" gorm:"type:varchar(36);index"`
	Name           string             `json:"name" gorm:"type:varchar(200);not null"`
	Email          string             `json:"email" gorm:"type:varchar(200)"`
	Phone          string             `json:"phone" gorm:"type:varchar(50)"`
	Specialization string             `json:"specialization" gorm:"type:varchar(200)"`
	HourlyRate     decimal.Decimal    `json:"hourlyRate" gorm:"type:decimal(18,4);not null;default:0"`
	Status         EmployeeStatus     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Skills         []string           `json:"skills" gorm:"serializer:json"`
	Availability   []AvailabilitySlot `json:"availability" gorm:"serializer:json"`
	Performance    Performance        `json:"performance" gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Consultant) TableName() string {
	return "consultants"
}
