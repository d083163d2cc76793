package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Actor *Person `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Common audit actions
const (
	AuditActionPersonLogin            = "person.login"
	AuditActionPersonCreate           = "person.create"
	AuditActionPersonChange           = "person.change"
	AuditActionMedicalProfileCreate   = "medical_profile.create"
	AuditActionMedicalProfileChange   = "medical_profile.change"
	AuditActionInsuranceCreate        = "insurance_record.create"
	AuditActionInsuranceChange        = "insurance_record.change"
	AuditActionDoctorProfileCreate    = "doctor_profile.create"
	AuditActionDoctorProfileChange    = "doctor_profile.change"
	AuditActionEmergencyContactCreate = "emergency_contact.create"
	AuditActionEmergencyContactChange = "emergency_contact.change"
	AuditActionAppointmentCreate      = "appointment.create"
	AuditActionAppointmentChange      = "appointment.change"
	AuditActionAppointmentCancel      = "appointment.cancel"
	AuditActionFacilityCreate         = "facility.create"
)

var auditActions = map[string]struct{}{
	AuditActionPersonLogin:            {},
	AuditActionPersonCreate:           {},
	AuditActionPersonChange:           {},
	AuditActionMedicalProfileCreate:   {},
	AuditActionMedicalProfileChange:   {},
	AuditActionInsuranceCreate:        {},
	AuditActionInsuranceChange:        {},
	AuditActionDoctorProfileCreate:    {},
	AuditActionDoctorProfileChange:    {},
	AuditActionEmergencyContactCreate: {},
	AuditActionEmergencyContactChange: {},
	AuditActionAppointmentCreate:      {},
	AuditActionAppointmentChange:      {},
	AuditActionAppointmentCancel:      {},
	AuditActionFacilityCreate:         {},
}

// IsAuditAction reports whether action is one of the recorded audit actions.
func IsAuditAction(action string) bool {
	_, ok := auditActions[action]
	return ok
}
